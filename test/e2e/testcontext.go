package e2e

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vladimirvivien/gexe/exec"
)

const (
	host = "localhost"

	SnapshotMetricFamily = "snapshot_snapshot_total"
	LateMetricFamily     = "snapshot_late_snapshot_total"
	ErrorMetricFamily    = "error_processing_error_total"

	startTimeout = 30 * time.Second
)

var ErrMetricNotFound = errors.New("metric not found")

type TestConfig struct {
	Name        string
	APIPort     int
	MetricsPort int
	APIKey      string
	DataDir     string
}

type KeyValue struct {
	Key   string
	Value string
}

type TestContext struct {
	Config TestConfig

	binary string
	proc   *exec.Proc
	logs   *syncBuffer
	client *http.Client
}

var random *rand.Rand

func init() {
	now := time.Now()

	random = rand.New(rand.NewSource(now.UnixMilli()))
}

func CreateTestConfig(test string, dataDir string) TestConfig {
	port := 20000 + random.Intn(20000)

	return TestConfig{
		Name:        fmt.Sprintf("%s-%x", test, random.Int31()),
		APIPort:     port,
		MetricsPort: port + 1,
		APIKey:      fmt.Sprintf("key-%x", random.Int63()),
		DataDir:     dataDir,
	}
}

func CreateTestContext(conf TestConfig, binary string) *TestContext {
	return &TestContext{
		Config: conf,
		binary: binary,
		logs:   &syncBuffer{},
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// Server func

func (tc *TestContext) env() []string {
	return []string{
		"MACHINEMONITOR_LOGS_LEVEL=2",
		"MACHINEMONITOR_SERVER_PORT=" + strconv.Itoa(tc.Config.APIPort),
		"MACHINEMONITOR_METRICS_PORT=" + strconv.Itoa(tc.Config.MetricsPort),
		"MACHINEMONITOR_SERVER_APIKEY=" + tc.Config.APIKey,
		"MACHINEMONITOR_SERVER_RATELIMIT_BURST=1000",
		"MACHINEMONITOR_INGESTION_MODE=none",
		"MACHINEMONITOR_STORE_BACKEND=badger",
		"MACHINEMONITOR_STORE_BADGER_PATH=" + filepath.Join(tc.Config.DataDir, "badger"),
	}
}

// Start runs the server and waits for it to answer.
func (tc *TestContext) Start(ctx context.Context) error {
	tc.proc = startCommand(tc.binary+" serve", tc.env(), tc.logs)

	err := tc.proc.Err()
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()

	for {
		_, err := tc.HttpGet(ctx, tc.apiURL("/healthz"))
		if err == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("server not ready (%w): logs:%s", err, tc.logs.String())
		case <-time.After(200 * time.Millisecond):
		}
	}
}

// Stop interrupts the server and waits for it to drain.
func (tc *TestContext) Stop() error {
	if tc.proc == nil || tc.proc.Command().Process == nil {
		return nil
	}

	err := tc.proc.Command().Process.Signal(os.Interrupt)
	if err != nil {
		return fmt.Errorf("failed to signal server: %w", err)
	}

	tc.proc.Wait()
	tc.proc = nil

	return nil
}

func (tc *TestContext) Logs() string {
	return tc.logs.String()
}

// HTTP func

func (tc *TestContext) apiURL(path string) string {
	return fmt.Sprintf("http://%s:%d%s", host, tc.Config.APIPort, path)
}

func (tc *TestContext) HttpGet(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return string(body), fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	return string(body), nil
}

func (tc *TestContext) GetMachine(ctx context.Context, id string) (string, error) {
	return tc.HttpGet(ctx, tc.apiURL("/api/machines/"+id))
}

func (tc *TestContext) ListMachines(ctx context.Context) (string, error) {
	return tc.HttpGet(ctx, tc.apiURL("/api/machines"))
}

// PushStatus posts payload as the status of machine id and returns the response code.
func (tc *TestContext) PushStatus(ctx context.Context, id string, payload string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tc.apiURL("/api/machines/"+id+"/status"), bytes.NewBufferString(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tc.Config.APIKey)

	resp, err := tc.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to push status: %w", err)
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

func (tc *TestContext) PushFile(ctx context.Context, id string, path string) (int, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read file: %w", err)
	}

	return tc.PushStatus(ctx, id, string(payload))
}

// DialViewer opens a websocket session on the live feed.
func (tc *TestContext) DialViewer(ctx context.Context) (*websocket.Conn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, fmt.Sprintf("ws://%s:%d/ws", host, tc.Config.APIPort), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial websocket: %w", err)
	}

	return conn, nil
}

// Metrics func

// GetMetric returns the value of the first sample of family matching every label.
func (tc *TestContext) GetMetric(ctx context.Context, family string, labels ...KeyValue) (float64, error) {
	body, err := tc.HttpGet(ctx, fmt.Sprintf("http://%s:%d/metrics", host, tc.Config.MetricsPort))
	if err != nil {
		return 0, err
	}

	scanner := bufio.NewScanner(strings.NewReader(body))

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") || !strings.HasPrefix(line, family) {
			continue
		}

		sample, value, found := strings.Cut(line, " ")
		if !found || (sample != family && !strings.HasPrefix(sample, family+"{")) {
			continue
		}

		if !matchLabels(sample, labels) {
			continue
		}

		return strconv.ParseFloat(strings.Fields(value)[0], 64)
	}

	return 0, fmt.Errorf("%w: %s %v", ErrMetricNotFound, family, labels)
}

func matchLabels(sample string, labels []KeyValue) bool {
	for _, kv := range labels {
		if !strings.Contains(sample, fmt.Sprintf("%s=%q", kv.Key, kv.Value)) {
			return false
		}
	}

	return true
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.buf.String()
}
