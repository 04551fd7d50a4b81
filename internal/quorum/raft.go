package quorum

import (
	"Keyo/internal/config"
	"Keyo/internal/logging"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"sync/atomic"
	"time"

	"github.com/hashicorp/raft"
)

type raftLeaderElection struct {
	raft     *raft.Raft
	config   config.LeaderElectionConfig
	callback LeaderChangeCallback
	isLeader atomic.Bool
}

func NewRaftLeaderElection(leaderElectionConfig config.LeaderElectionConfig, callback LeaderChangeCallback) LeaderElection {
	return &raftLeaderElection{
		config:   leaderElectionConfig,
		callback: callback,
	}
}

func (r *raftLeaderElection) Start(ctx context.Context) error {
	raftConfig := raft.DefaultConfig()
	raftConfig.LocalID = raft.ServerID(r.config.Raft.Id)
	raftConfig.LogOutput = io.Discard

	store := raft.NewInmemStore()
	snapshots := raft.NewInmemSnapshotStore()

	bindAddr := fmt.Sprintf("%s:%d", r.config.Raft.Host, r.config.Raft.Port)
	advertise, err := net.ResolveTCPAddr("tcp", bindAddr)
	if err != nil {
		return fmt.Errorf("resolve TCP addr: %w", err)
	}

	transport, err := raft.NewTCPTransport(bindAddr, advertise, 3, 10*time.Second, os.Stderr)
	if err != nil {
		return fmt.Errorf("transport: %w", err)
	}

	r.raft, err = raft.NewRaft(raftConfig, &noopFSM{}, store, store, snapshots, transport)
	if err != nil {
		return fmt.Errorf("new raft: %w", err)
	}

	if r.config.Raft.Id == r.config.Raft.InitiatorId {
		servers := make([]raft.Server, len(r.config.Raft.Nodes))
		for i, node := range r.config.Raft.Nodes {
			servers[i] = raft.Server{
				ID:      raft.ServerID(node.Id),
				Address: raft.ServerAddress(node.Address),
			}
		}

		cfg := raft.Configuration{Servers: servers}
		future := r.raft.BootstrapCluster(cfg)
		if err := future.Error(); err != nil {
			return fmt.Errorf("bootstrap: %w", err)
		}

		logging.Logger.Infof("Bootstrapped Raft cluster with %d nodes", len(servers))
	}

	go r.watchLeadership(ctx)
	return nil
}

func (r *raftLeaderElection) watchLeadership(ctx context.Context) {
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	prev := raft.Follower
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			state := r.raft.State()
			if state != prev {
				logging.Logger.Infof("Raft state changed to %s", state)
				isLeader := state == raft.Leader
				if r.isLeader.Swap(isLeader) != isLeader {
					go r.callback(isLeader)
				}
				prev = state
			}
		}
	}
}

func (r *raftLeaderElection) Stop() error {
	if r.raft != nil {
		f := r.raft.Shutdown()
		return f.Error()
	}
	return nil
}

func (r *raftLeaderElection) IsLeader() bool {
	return r.isLeader.Load()
}

type noopFSM struct{}

func (n *noopFSM) Apply(*raft.Log) interface{}         { return nil }
func (n *noopFSM) Snapshot() (raft.FSMSnapshot, error) { return &noopSnapshot{}, nil }
func (n *noopFSM) Restore(io.ReadCloser) error         { return nil }

type noopSnapshot struct{}

func (n *noopSnapshot) Persist(sink raft.SnapshotSink) error {
	err := sink.Close()
	if err != nil {
		return fmt.Errorf("persist: %w", err)
	}
	return nil
}
func (n *noopSnapshot) Release() {}
