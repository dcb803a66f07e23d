// internal/infra/secrets/provider.go
package secrets

import (
	"context"
	"errors"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// Provider reads secret values from Google Secret Manager.
type Provider struct {
	sm        *secretmanager.Client
	projectID string
}

func NewProvider(sm *secretmanager.Client, projectID string) *Provider {
	return &Provider{sm: sm, projectID: strings.TrimSpace(projectID)}
}

// Get fetches the latest version of secretID as a trimmed string.
func (p *Provider) Get(ctx context.Context, secretID string) (string, error) {
	if p == nil || p.sm == nil {
		return "", errors.New("secrets: provider not configured")
	}
	sid := strings.TrimSpace(secretID)
	if sid == "" {
		return "", errors.New("secrets: secretID is empty")
	}
	if p.projectID == "" {
		return "", errors.New("secrets: projectID is empty")
	}

	name := "projects/" + p.projectID + "/secrets/" + sid + "/versions/latest"
	resp, err := p.sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", errors.New("secrets: AccessSecretVersion failed (" + name + "): " + err.Error())
	}
	if resp == nil || resp.Payload == nil {
		return "", errors.New("secrets: empty payload (" + name + ")")
	}
	return strings.TrimSpace(string(resp.Payload.Data)), nil
}
