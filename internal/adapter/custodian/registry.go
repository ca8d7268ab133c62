package custodian

import (
	"sync"

	"freight-settlement/config"
	"freight-settlement/internal/core/ports"
	"freight-settlement/pkg/apperror"

	"github.com/rs/zerolog"
)

// Registry implements ports.CustodianRegistry. Providers are constructed
// lazily from config and cached per name; every caller asking for the same
// custodian shares one instance and its HTTP client.
type Registry struct {
	cfg config.CustodiansConfig
	log zerolog.Logger

	mu    sync.Mutex
	cache map[ports.CustodianName]ports.CustodianProvider
}

// NewRegistry creates a custodian registry.
func NewRegistry(cfg config.CustodiansConfig, log zerolog.Logger) *Registry {
	return &Registry{
		cfg:   cfg,
		log:   log,
		cache: make(map[ports.CustodianName]ports.CustodianProvider),
	}
}

// Provider resolves a custodian by name. Unknown names are a CST_001 error,
// not a panic: custodian names reach this point from external callers.
func (r *Registry) Provider(name ports.CustodianName) (ports.CustodianProvider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.cache[name]; ok {
		return p, nil
	}

	var c config.CustodianConfig
	switch name {
	case ports.CustodianVaultis:
		c = r.cfg.Vaultis
	case ports.CustodianChargeHub:
		c = r.cfg.ChargeHub
	default:
		return nil, apperror.ErrUnsupportedCustodian(string(name))
	}

	p, err := r.build(name, c)
	if err != nil {
		return nil, err
	}
	r.cache[name] = p
	return p, nil
}

// ProviderWithConfig constructs a provider from an explicit configuration,
// bypassing the cache in both directions: the returned instance is fresh and
// is not stored, so the default-config singletons stay untouched.
func (r *Registry) ProviderWithConfig(name ports.CustodianName, cfg config.CustodianConfig) (ports.CustodianProvider, error) {
	return r.build(name, cfg)
}

func (r *Registry) build(name ports.CustodianName, c config.CustodianConfig) (ports.CustodianProvider, error) {
	switch name {
	case ports.CustodianVaultis:
		return NewVaultis(c.BaseURL, c.APIKey, c.APISecret, c.Timeout, r.log), nil
	case ports.CustodianChargeHub:
		return NewChargeHub(c.BaseURL, c.APIKey, c.Timeout, r.log), nil
	default:
		return nil, apperror.ErrUnsupportedCustodian(string(name))
	}
}
