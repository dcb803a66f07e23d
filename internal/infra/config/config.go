// internal/infra/config/config.go
package config

import "os"

// Config holds the process-wide environment configuration.
type Config struct {
	Port string

	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirebaseProjectID        string

	// ItemImageBucket is the public GCS bucket for item images.
	ItemImageBucket string

	// Mail settings. The SendGrid key itself is fetched from Secret
	// Manager under SendGridSecretName; SendGridAPIKey (env) wins when set,
	// which keeps local runs off the network.
	MailFrom           string
	SendGridAPIKey     string
	SendGridSecretName string

	// CORSAllowedOrigin is the browser origin served by the storefront.
	CORSAllowedOrigin string
}

// Load reads the environment into a Config.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "storefront-dev")

	return &Config{
		Port: getenvDefault("PORT", "8080"),

		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		ItemImageBucket: os.Getenv("ITEM_IMAGE_BUCKET"),

		MailFrom:           os.Getenv("MAIL_FROM"),
		SendGridAPIKey:     os.Getenv("SENDGRID_API_KEY"),
		SendGridSecretName: getenvDefault("SENDGRID_SECRET_NAME", "sendgrid-api-key"),

		CORSAllowedOrigin: getenvDefault("CORS_ALLOWED_ORIGIN", "*"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
