package quorum

import (
	"context"
	"sync/atomic"
)

// singleNode is the election of a worker that runs alone: it leads from Start
// until Stop and reports both transitions.
type singleNode struct {
	callback LeaderChangeCallback
	leader   atomic.Bool
}

func NewSingleNode(callback LeaderChangeCallback) LeaderElection {
	return &singleNode{
		callback: callback,
	}
}

func (n *singleNode) Start(_ context.Context) error {
	if n.leader.CompareAndSwap(false, true) {
		n.notify(true)
	}
	return nil
}

func (n *singleNode) Stop() error {
	if n.leader.CompareAndSwap(true, false) {
		n.notify(false)
	}
	return nil
}

func (n *singleNode) IsLeader() bool {
	return n.leader.Load()
}

func (n *singleNode) notify(isLeader bool) {
	if n.callback != nil {
		n.callback(isLeader)
	}
}
