package setup

import (
	"Keyo/internal/config"
	"Keyo/internal/repositories"
	"Keyo/internal/repositories/postgres"

	"github.com/The127/ioc"
)

func Repositories(dc *ioc.DependencyCollection, mode config.DatabaseMode) {
	switch mode {
	case config.DatabaseModePostgres:
		postgresRepositories(dc)

	default:
		panic("database mode missing or not supported")
	}
}

func postgresRepositories(dc *ioc.DependencyCollection) {
	ioc.RegisterScoped(dc, func(_ *ioc.DependencyProvider) repositories.NotificationRepository {
		return postgres.NewNotificationRepository()
	})
	ioc.RegisterScoped(dc, func(_ *ioc.DependencyProvider) repositories.NotificationPreferenceRepository {
		return postgres.NewNotificationPreferenceRepository()
	})
	ioc.RegisterScoped(dc, func(_ *ioc.DependencyProvider) repositories.DeviceRepository {
		return postgres.NewDeviceRepository()
	})
	ioc.RegisterScoped(dc, func(_ *ioc.DependencyProvider) repositories.SubscriptionRepository {
		return postgres.NewSubscriptionRepository()
	})
	ioc.RegisterScoped(dc, func(_ *ioc.DependencyProvider) repositories.ProfileRepository {
		return postgres.NewProfileRepository()
	})
	ioc.RegisterScoped(dc, func(_ *ioc.DependencyProvider) repositories.OutboxMessageRepository {
		return postgres.NewOutboxMessageRepository()
	})
}
