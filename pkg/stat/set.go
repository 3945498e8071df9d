// Copyright 2026 seqgen project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package stat

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/VividCortex/gohistogram"
	"github.com/prometheus/client_golang/prometheus"
)

// This file provides named metrics (Val type) for generation runs and a registry for them
// (Set type) with a global default registry.
//
// Simple uses of metrics:
//
//	statFoo := stat.New("metric name", "metric description")
//	statFoo.Add(1)
//
// Values can also be exported to Prometheus (Prometheus option) and dumped
// in the text exposition format with WriteTextfile.

type UI struct {
	Name  string
	Desc  string
	Value string
	V     int
}

func New(name, desc string, opts ...any) *Val {
	return global.New(name, desc, opts...)
}

func Collect() []UI {
	return global.Collect()
}

func WriteTextfile(filename string) error {
	return global.WriteTextfile(filename)
}

var global = NewSet()

type Set struct {
	mu    sync.Mutex
	vals  map[string]*Val
	reg   *prometheus.Registry
	start time.Time
}

func NewSet() *Set {
	return &Set{
		vals:  make(map[string]*Val),
		reg:   prometheus.NewRegistry(),
		start: time.Now(),
	}
}

// Prometheus exports the metric to Prometheus under the given name.
type Prometheus string

// Rate says to show metric rate per unit of time in addition to the total value.
type Rate struct{}

// Distribution says to collect histogram of individual samples and show their percentiles.
type Distribution struct{}

const histogramBuckets = 255

func (s *Set) New(name, desc string, opts ...any) *Val {
	v := &Val{
		name: name,
		desc: desc,
		fmt:  func(v int, period time.Duration) string { return strconv.Itoa(v) },
	}
	var promName Prometheus
	for _, o := range opts {
		switch opt := o.(type) {
		case Rate:
			v.fmt = formatRate
		case Distribution:
			v.hist = gohistogram.NewHistogram(histogramBuckets)
			v.fmt = v.formatDistribution
		case func(int, time.Duration) string:
			v.fmt = opt
		case Prometheus:
			promName = opt
		default:
			panic(fmt.Sprintf("unknown stats option %#v", o))
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.vals[name] != nil {
		panic(fmt.Sprintf("stat %v is already registered", name))
	}
	s.vals[name] = v
	if promName != "" {
		s.reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: string(promName),
			Help: desc,
		},
			func() float64 { return float64(v.Val()) },
		))
	}
	return v
}

func (s *Set) Collect() []UI {
	s.mu.Lock()
	defer s.mu.Unlock()
	period := time.Since(s.start)
	var res []UI
	for _, v := range s.vals {
		val := v.Val()
		res = append(res, UI{
			Name:  v.name,
			Desc:  v.desc,
			Value: v.fmt(val, period),
			V:     val,
		})
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Name < res[j].Name
	})
	return res
}

// WriteTextfile writes all metrics exported to Prometheus to the file
// in the text exposition format (node exporter textfile collector).
func (s *Set) WriteTextfile(filename string) error {
	return prometheus.WriteToTextfile(filename, s.reg)
}

type Val struct {
	name   string
	desc   string
	val    atomic.Uint64
	fmt    func(int, time.Duration) string
	histMu sync.Mutex
	hist   *gohistogram.NumericHistogram
}

// Add adds val to the metric, for distributions it records a new sample.
func (v *Val) Add(val int) {
	if v.hist != nil {
		v.histMu.Lock()
		v.hist.Add(float64(val))
		v.histMu.Unlock()
		return
	}
	v.val.Add(uint64(val))
}

// Val returns the current value, for distributions it's the mean of samples.
func (v *Val) Val() int {
	if v.hist != nil {
		v.histMu.Lock()
		defer v.histMu.Unlock()
		if v.hist.Count() == 0 {
			return 0
		}
		return int(v.hist.Mean())
	}
	return int(v.val.Load())
}

func (v *Val) formatDistribution(mean int, period time.Duration) string {
	v.histMu.Lock()
	defer v.histMu.Unlock()
	if v.hist.Count() == 0 {
		return "-"
	}
	return fmt.Sprintf("mean %v (p10 %.0f, p50 %.0f, p90 %.0f)", mean,
		v.hist.Quantile(0.1), v.hist.Quantile(0.5), v.hist.Quantile(0.9))
}

func formatRate(v int, period time.Duration) string {
	secs := int(period.Seconds())
	if secs == 0 {
		return strconv.Itoa(v)
	}
	if x := v / secs; x >= 10 {
		return fmt.Sprintf("%v (%v/sec)", v, x)
	}
	if x := v * 60 / secs; x >= 10 {
		return fmt.Sprintf("%v (%v/min)", v, x)
	}
	x := v * 60 * 60 / secs
	return fmt.Sprintf("%v (%v/hour)", v, x)
}
