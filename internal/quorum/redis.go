package quorum

import (
	"Keyo/internal/config"
	"Keyo/internal/logging"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// renewScript extends the lease only while this node still holds it.
var renewScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// redisLeaderElection holds a lease key set with SET NX PX. The holder renews
// the lease at a third of its lifetime; the others retry acquiring it.
type redisLeaderElection struct {
	client   redis.UniversalClient
	key      string
	lease    time.Duration
	nodeId   string
	callback LeaderChangeCallback
	isLeader atomic.Bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

func NewRedisLeaderElection(client redis.UniversalClient, leaderElectionConfig config.LeaderElectionConfig, callback LeaderChangeCallback) LeaderElection {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	return &redisLeaderElection{
		client:   client,
		key:      leaderElectionConfig.Redis.Key,
		lease:    time.Duration(leaderElectionConfig.Redis.LeaseSeconds) * time.Second,
		nodeId:   fmt.Sprintf("%s-%s", hostname, uuid.NewString()),
		callback: callback,
	}
}

func (r *redisLeaderElection) Start(ctx context.Context) error {
	if r.lease <= 0 {
		return errors.New("lease must be positive")
	}

	err := r.client.Ping(ctx).Err()
	if err != nil {
		return fmt.Errorf("pinging redis: %w", err)
	}

	ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.run(ctx)
	}()

	return nil
}

func (r *redisLeaderElection) run(ctx context.Context) {
	r.tick(ctx)

	ticker := time.NewTicker(r.lease / 3)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *redisLeaderElection) tick(ctx context.Context) {
	leader, err := r.holdLease(ctx)
	if err != nil {
		logging.Logger.Warnf("leader lease %s: %v", r.key, err)
		leader = false
	}

	if r.isLeader.Swap(leader) != leader {
		logging.Logger.Infow("leadership changed", "node", r.nodeId, "leader", leader)
		r.callback(leader)
	}
}

func (r *redisLeaderElection) holdLease(ctx context.Context) (bool, error) {
	if r.isLeader.Load() {
		renewed, err := renewScript.Run(ctx, r.client, []string{r.key}, r.nodeId, r.lease.Milliseconds()).Int()
		if err != nil {
			return false, fmt.Errorf("renewing: %w", err)
		}
		return renewed == 1, nil
	}

	acquired, err := r.client.SetNX(ctx, r.key, r.nodeId, r.lease).Result()
	if err != nil {
		return false, fmt.Errorf("acquiring: %w", err)
	}
	return acquired, nil
}

func (r *redisLeaderElection) Stop() error {
	if r.cancel == nil {
		return nil
	}
	r.cancel()
	r.wg.Wait()

	if !r.isLeader.Swap(false) {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := releaseScript.Run(ctx, r.client, []string{r.key}, r.nodeId).Err()
	if err != nil {
		return fmt.Errorf("releasing leader lease: %w", err)
	}

	r.callback(false)
	return nil
}

func (r *redisLeaderElection) IsLeader() bool {
	return r.isLeader.Load()
}
