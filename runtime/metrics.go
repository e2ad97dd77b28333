// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package runtime

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "runtime"

type metrics struct {
	instructions *prometheus.CounterVec
	moved        *prometheus.CounterVec
	execute      metric.Averager
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	execute, err := metric.NewAverager(
		namespace+"_execute",
		"time spent executing an instruction",
		r,
	)
	if err != nil {
		return nil, err
	}
	m := &metrics{
		instructions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "instructions",
			Help:      "number of instructions executed by operation and outcome",
		}, []string{"operation", "result"}),
		moved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lamports_moved",
			Help:      "lamports moved into or out of records",
		}, []string{"operation"}),
		execute: execute,
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.instructions),
		r.Register(m.moved),
	)
	return m, errs.Err
}
