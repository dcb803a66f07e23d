// internal/platform/di/infra.go
package di

import (
	"context"
	"errors"
	"log"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/storage"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	appcfg "storefront/internal/infra/config"
	firestoreinfra "storefront/internal/infra/firestore"
	"storefront/internal/infra/secrets"
)

// Infra is shared runtime infrastructure for DI.
// - owns external clients (Firestore/FirebaseAuth/GCS/SecretManager)
// - owns env/config-resolved runtime settings
//
// Infra must NOT depend on routers, handlers, or queries.
type Infra struct {
	Config    *appcfg.Config
	ProjectID string

	// Clients (owned; Close-managed)
	Firestore     *firestoreinfra.ClientWrapper
	GCS           *storage.Client
	FirebaseApp   *firebase.App
	FirebaseAuth  *firebaseauth.Client
	SecretManager *secretmanager.Client

	// Secrets reads from Secret Manager (nil when the client failed).
	Secrets *secrets.Provider
}

// NewInfra initializes shared infra.
// Firestore/GCS are strict (return error).
// Firebase/Auth and SecretManager are best-effort (warn + continue).
func NewInfra(ctx context.Context) (*Infra, error) {
	cfg := appcfg.Load()
	if cfg == nil {
		return nil, errors.New("di.infra: config is nil")
	}

	projectID := strings.TrimSpace(cfg.FirestoreProjectID)
	if projectID == "" {
		return nil, errors.New("di.infra: projectID is empty (set FIRESTORE_PROJECT_ID or GCP_PROJECT_ID)")
	}

	inf := &Infra{
		Config:    cfg,
		ProjectID: projectID,
	}

	credFile := strings.TrimSpace(cfg.FirestoreCredentialsFile)
	var clientOpts []option.ClientOption
	if credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
		log.Printf("[di.infra] using credentials file for GCP clients")
	} else {
		log.Printf("[di.infra] using Application Default Credentials")
	}

	// 1) Firestore (strict)
	{
		fs, err := firestoreinfra.NewClient(ctx, projectID, credFile)
		if err != nil {
			return nil, err
		}
		inf.Firestore = fs
	}

	// 2) GCS (strict)
	{
		var gcsClient *storage.Client
		var err error
		if len(clientOpts) > 0 {
			gcsClient, err = storage.NewClient(ctx, clientOpts...)
		} else {
			gcsClient, err = storage.NewClient(ctx)
		}
		if err != nil {
			_ = inf.Firestore.Close()
			return nil, errors.New("di.infra: storage.NewClient failed: " + err.Error())
		}
		inf.GCS = gcsClient
		log.Printf("[di.infra] GCS storage client initialized")
	}

	// 3) Firebase App/Auth (best-effort)
	{
		fbCfg := &firebase.Config{ProjectID: strings.TrimSpace(cfg.FirebaseProjectID)}
		var fbApp *firebase.App
		var err error
		if len(clientOpts) > 0 {
			fbApp, err = firebase.NewApp(ctx, fbCfg, clientOpts...)
		} else {
			fbApp, err = firebase.NewApp(ctx, fbCfg)
		}
		if err != nil {
			log.Printf("[di.infra] WARN: firebase app init failed: %v", err)
		} else {
			inf.FirebaseApp = fbApp
			authClient, err := fbApp.Auth(ctx)
			if err != nil {
				log.Printf("[di.infra] WARN: firebase auth init failed: %v", err)
			} else {
				inf.FirebaseAuth = authClient
				log.Printf("[di.infra] Firebase Auth initialized")
			}
		}
	}

	// 4) Secret Manager (best-effort; mail key lookup degrades without it)
	{
		var sm *secretmanager.Client
		var err error
		if len(clientOpts) > 0 {
			sm, err = secretmanager.NewClient(ctx, clientOpts...)
		} else {
			sm, err = secretmanager.NewClient(ctx)
		}
		if err != nil {
			log.Printf("[di.infra] WARN: secretmanager.NewClient failed: %v (secret-backed settings disabled)", err)
			sm = nil
		}
		inf.SecretManager = sm
		if sm != nil {
			inf.Secrets = secrets.NewProvider(sm, projectID)
		}
	}

	return inf, nil
}

func (i *Infra) Close() error {
	if i == nil {
		return nil
	}
	if i.Firestore != nil {
		_ = i.Firestore.Close()
	}
	if i.GCS != nil {
		_ = i.GCS.Close()
	}
	if i.SecretManager != nil {
		_ = i.SecretManager.Close()
	}
	return nil
}
