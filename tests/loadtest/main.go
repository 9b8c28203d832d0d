package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

type options struct {
	baseURL  string
	workers  int
	duration time.Duration
	fids     int
}

var readingTypes = []string{"one", "three", "custom"}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	limited   int64
	latencies []time.Duration
}

func main() {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "loadtest",
		Short:        "Drive tarotstatsd with tracks and stats reads",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}
	cmd.Flags().StringVar(&opts.baseURL, "url", "http://127.0.0.1:8787", "server base URL")
	cmd.Flags().IntVar(&opts.workers, "workers", 50, "concurrent workers")
	cmd.Flags().DurationVar(&opts.duration, "duration", 10*time.Second, "duration of each phase")
	cmd.Flags().IntVar(&opts.fids, "fids", 500, "number of distinct fids")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 5 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        200,
			MaxIdleConnsPerHost: 200,
			IdleConnTimeout:     30 * time.Second,
			DialContext: (&net.Dialer{
				Timeout:   2 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		},
	}
}

func run(opts *options) error {
	client := newHTTPClient()

	fmt.Println("=== tarotstatsd load test ===")
	fmt.Printf("Workers: %d | Duration: %s | FIDs: %d\n\n", opts.workers, opts.duration, opts.fids)

	fmt.Print("Waiting for server... ")
	if err := waitHealthy(client, opts.baseURL); err != nil {
		fmt.Println("FAILED")
		return err
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: tracks (POST /api/track) ---")
	runPhase(opts, func(rng *rand.Rand) result {
		return doTrack(client, opts, rng)
	})

	fmt.Println("\n--- Phase 2: mixed (50% track, 50% stats) ---")
	runPhase(opts, func(rng *rand.Rand) result {
		if rng.Float64() < 0.5 {
			return doTrack(client, opts, rng)
		}
		return doStats(client, opts, rng)
	})

	fmt.Println("\n--- Phase 3: read-heavy (10% track, 90% stats) ---")
	runPhase(opts, func(rng *rand.Rand) result {
		if rng.Float64() < 0.1 {
			return doTrack(client, opts, rng)
		}
		return doStats(client, opts, rng)
	})
	return nil
}

func waitHealthy(client *http.Client, baseURL string) error {
	var lastErr error
	for i := 0; i < 30; i++ {
		resp, err := client.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil
		}
		lastErr = err
		time.Sleep(200 * time.Millisecond)
	}
	return fmt.Errorf("server not responding: %w", lastErr)
}

func runPhase(opts *options, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < opts.workers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- workFn(rng)
				}
			}
		}(rand.Int63() + int64(i))
	}

	all := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := all[r.endpoint]
			if !ok {
				s = &stats{}
				all[r.endpoint] = s
			}
			s.count++
			switch {
			case r.status == http.StatusTooManyRequests:
				s.limited++
			case r.err:
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(opts.duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(all, opts.duration)
}

func printResults(all map[string]*stats, duration time.Duration) {
	var total, errors, limited int64

	endpoints := make([]string, 0, len(all))
	for ep := range all {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-18s %8s %6s %6s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "429", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 76))

	for _, ep := range endpoints {
		s := all[ep]
		total += s.count
		errors += s.errors
		limited += s.limited

		sort.Slice(s.latencies, func(i, j int) bool { return s.latencies[i] < s.latencies[j] })
		fmt.Printf("  %-18s %8d %6d %6d %10s %10s %10s\n", ep, s.count, s.errors, s.limited,
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	fmt.Println("  " + strings.Repeat("-", 76))
	if total == 0 {
		return
	}
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | Rate limited: %d | RPS: %.0f\n",
		total, errors, float64(errors)/float64(total)*100, limited, float64(total)/duration.Seconds())
}

func doTrack(client *http.Client, opts *options, rng *rand.Rand) result {
	body := map[string]any{
		"fid":      rng.Intn(opts.fids) + 1,
		"event":    "visit",
		"clientTs": time.Now().UnixMilli(),
	}
	if rng.Float64() < 0.7 {
		body["event"] = "reading"
		body["readingType"] = readingTypes[rng.Intn(len(readingTypes))]
	}

	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := client.Post(opts.baseURL+"/api/track", "application/json", bytes.NewReader(data))
	return finish("POST /api/track", resp, err, start)
}

func doStats(client *http.Client, opts *options, rng *rand.Rand) result {
	start := time.Now()
	resp, err := client.Get(fmt.Sprintf("%s/api/stats?fid=%d", opts.baseURL, rng.Intn(opts.fids)+1))
	r := finish("GET /api/stats", resp, err, start)
	if r.status == http.StatusNotFound {
		r.err = false
	}
	return r
}

func finish(endpoint string, resp *http.Response, err error, start time.Time) result {
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
