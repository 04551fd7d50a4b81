package setup

import (
	"Keyo/internal/authentication"
	"Keyo/internal/behaviours"
	"Keyo/internal/clock"
	"Keyo/internal/config"
	"Keyo/internal/services"
	"Keyo/internal/services/audit"
	"Keyo/internal/services/keyValue"
	"Keyo/utils"

	"github.com/The127/ioc"
	"github.com/redis/go-redis/v9"
)

func Services(dc *ioc.DependencyCollection) {
	ioc.RegisterSingleton(dc, func(_ *ioc.DependencyProvider) clock.Service {
		return clock.NewClockService()
	})

	ioc.RegisterSingleton(dc, func(_ *ioc.DependencyProvider) services.TemplateService {
		return services.NewTemplateService()
	})
	ioc.RegisterSingleton(dc, func(_ *ioc.DependencyProvider) behaviours.AuditLogger {
		return audit.NewConsoleAuditLogger()
	})
}

func Authentication(dc *ioc.DependencyCollection, ac config.AuthConfig) {
	ioc.RegisterSingleton(dc, func(_ *ioc.DependencyProvider) authentication.ServiceKeyVerifier {
		return authentication.NewServiceKeyVerifier(ac.ServiceKey, ac.ServiceKeyHash)
	})
}

// Caching registers the key/value store. In redis mode the client is returned
// so the caller can share and close it.
func Caching(dc *ioc.DependencyCollection, c config.CacheConfig) *redis.Client {
	switch c.Mode {
	case config.CacheModeMemory:
		ioc.RegisterSingleton(dc, func(_ *ioc.DependencyProvider) keyValue.Store {
			return keyValue.NewMemoryStore()
		})
		return nil

	case config.CacheModeRedis:
		client := utils.NewRedisClient(c.Redis)
		ioc.RegisterSingleton(dc, func(_ *ioc.DependencyProvider) keyValue.Store {
			return keyValue.NewRedisStore(client)
		})
		return client

	default:
		panic("cache mode missing or not supported")
	}
}
