// Package gsuite implements the directory client against the Google
// Workspace Admin Directory API, using a service account with domain-wide
// delegation.
package gsuite

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	admin "google.golang.org/api/admin/directory/v1"
	"google.golang.org/api/option"

	"github.com/sim-tools/simapps/internal/config"
	"github.com/sim-tools/simapps/internal/directory"
)

const BackendName = "gsuite"

const pageSize = 100

type gsuiteClient struct {
	adminService *admin.Service
	domain       string
}

// New creates a Google Workspace backend client from configuration.
func New(cfg *config.Config) (directory.Client, error) {
	if len(cfg.Gsuite.ServiceAccountKeyPath) == 0 {
		return nil, fmt.Errorf("gsuite.service_account_key_path is required for the gsuite backend")
	}
	if len(cfg.Gsuite.Domain) == 0 {
		return nil, fmt.Errorf("gsuite.domain is required for the gsuite backend")
	}
	if len(cfg.Gsuite.AdminEmail) == 0 {
		return nil, fmt.Errorf("gsuite.admin_email is required for the gsuite backend")
	}

	key, err := os.ReadFile(cfg.Gsuite.ServiceAccountKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account key: %w", err)
	}

	// Create JWT config for domain-wide delegation
	conf, err := google.JWTConfigFromJSON(key,
		admin.AdminDirectoryGroupReadonlyScope,
		admin.AdminDirectoryGroupMemberReadonlyScope,
		admin.AdminDirectoryUserReadonlyScope,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}

	// Set the subject (admin email) for domain-wide delegation
	conf.Subject = cfg.Gsuite.AdminEmail

	ctx := context.Background()
	adminService, err := admin.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create admin service: %w", err)
	}

	return &gsuiteClient{
		adminService: adminService,
		domain:       cfg.Gsuite.Domain,
	}, nil
}

func (c *gsuiteClient) Close() error {
	return nil
}

func init() {
	directory.Register(BackendName, New)
}
