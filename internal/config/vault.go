package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/vault/api"
	"github.com/knadh/koanf/maps"
)

type vaultProvider struct {
	config VaultConfig
}

// VaultProvider reads a KV v2 secret whose keys are dotted config paths
// (for example "mail.password" or "push.credentialsjson").
func VaultProvider(vc VaultConfig) *vaultProvider {
	return &vaultProvider{config: vc}
}

func (p *vaultProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("vault provider does not support this method")
}

func (p *vaultProvider) Read() (map[string]any, error) {
	if p.config.Address == "" {
		return nil, errors.New("missing vault address")
	}

	if p.config.Mount == "" {
		p.config.Mount = "secret"
	}

	if p.config.Path == "" {
		p.config.Path = "keyo"
	}

	vaultConfig := api.DefaultConfig()
	vaultConfig.Address = p.config.Address

	client, err := api.NewClient(vaultConfig)
	if err != nil {
		return nil, fmt.Errorf("creating vault client: %w", err)
	}

	if p.config.Token != "" {
		client.SetToken(p.config.Token)
	}

	secret, err := client.KVv2(p.config.Mount).Get(context.Background(), p.config.Path)
	if err != nil {
		return nil, fmt.Errorf("reading secret %s/%s: %w", p.config.Mount, p.config.Path, err)
	}

	return maps.Unflatten(secret.Data, "."), nil
}
