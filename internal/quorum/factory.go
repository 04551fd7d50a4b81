package quorum

import (
	"Keyo/internal/config"
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type LeaderChangeCallback func(isLeader bool)

type LeaderElectionFactory struct {
	callback    LeaderChangeCallback
	redisClient redis.UniversalClient
}

func NewLeaderElectionFactory() *LeaderElectionFactory {
	return &LeaderElectionFactory{
		callback: func(bool) {},
	}
}

func (f *LeaderElectionFactory) OnLeaderChange(callback LeaderChangeCallback) *LeaderElectionFactory {
	f.callback = callback
	return f
}

// WithRedis sets the client used by the redis lease mode.
func (f *LeaderElectionFactory) WithRedis(client redis.UniversalClient) *LeaderElectionFactory {
	f.redisClient = client
	return f
}

func (f *LeaderElectionFactory) Build(leaderElectionConfig config.LeaderElectionConfig) LeaderElection {
	switch leaderElectionConfig.Mode {
	case config.LeaderElectionModeNone:
		return NewSingleNode(f.callback)

	case config.LeaderElectionModeRedis:
		if f.redisClient == nil {
			panic("redis leader election needs a redis client")
		}
		return NewRedisLeaderElection(f.redisClient, leaderElectionConfig, f.callback)

	case config.LeaderElectionModeRaft:
		return NewRaftLeaderElection(leaderElectionConfig, f.callback)

	default:
		panic(fmt.Sprintf("leader election mode %s not supported", leaderElectionConfig.Mode))
	}
}

type LeaderElection interface {
	Start(ctx context.Context) error
	Stop() error
	IsLeader() bool
}
