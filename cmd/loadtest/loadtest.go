// Command loadtest drives read traffic against a running instance and
// reports latency percentiles together with the cache hit ratio scraped
// from /metrics. Run the server and seed the database first.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

func main() {
	base := flag.String("base", "http://localhost:8080", "Base URL of the running server")
	duration := flag.Duration("duration", 15*time.Second, "Duration of the test")
	rate := flag.Int("rate", 100, "Requests per second")
	flag.Parse()

	paths := []string{
		"/api/v1/vendors",
		"/api/v1/vendors?page=2",
		"/api/v1/dmr",
		"/api/v1/orders",
		"/api/v1/geo/states",
		"/api/v1/dashboard/counts",
	}

	targets := make([]vegeta.Target, 0, len(paths))
	for _, p := range paths {
		targets = append(targets, vegeta.Target{Method: http.MethodGet, URL: *base + p})
	}
	targeter := vegeta.NewStaticTargeter(targets...)

	hitsBefore, missesBefore := scrapeCacheCounters(*base)

	attacker := vegeta.NewAttacker()
	pacer := vegeta.Rate{Freq: *rate, Per: time.Second}

	var metrics vegeta.Metrics
	fmt.Printf("Attacking %s for %s at %d req/s\n", *base, *duration, *rate)
	for res := range attacker.Attack(targeter, pacer, *duration, "procure-read-path") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Printf("\nRequests:   %d\n", metrics.Requests)
	fmt.Printf("Success:    %.2f%%\n", metrics.Success*100)
	fmt.Printf("p50:        %s\n", metrics.Latencies.P50)
	fmt.Printf("p95:        %s\n", metrics.Latencies.P95)
	fmt.Printf("p99:        %s\n", metrics.Latencies.P99)
	fmt.Printf("Max:        %s\n", metrics.Latencies.Max)

	hitsAfter, missesAfter := scrapeCacheCounters(*base)
	hits := hitsAfter - hitsBefore
	misses := missesAfter - missesBefore
	if total := hits + misses; total > 0 {
		fmt.Printf("\nCache hits: %.0f, misses: %.0f (%.1f%% hit ratio)\n",
			hits, misses, hits/total*100)
	}
}

// scrapeCacheCounters reads the prometheus endpoint and sums the cache hit
// and miss counters. Failures return zeros; the latency report is still
// useful without them.
func scrapeCacheCounters(base string) (hits, misses float64) {
	resp, err := http.Get(base + "/metrics")
	if err != nil {
		log.Printf("could not scrape metrics: %v", err)
		return 0, 0
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "procure_cache_hits_total"):
			hits += parseMetricValue(line)
		case strings.HasPrefix(line, "procure_cache_misses_total"):
			misses += parseMetricValue(line)
		}
	}
	return hits, misses
}

func parseMetricValue(line string) float64 {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0
	}
	v, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	if err != nil {
		return 0
	}
	return v
}
