package logger

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Publisher interface {
	PublishMessage(ctx context.Context, topic string, payload interface{}) error
}

type CollectionConfig struct {
	TimeInterval   time.Duration // flush interval (e.g., 30s)
	CountThreshold int           // max unique logs before flush (e.g., 100)
	Topic          string        // label attached to published summaries
	Publisher      Publisher     // receives []AggregatedLogEntry of repeated entries
}

type AggregatedLogEntry struct {
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields"`
	Caller    string                 `json:"caller"`
	Count     int                    `json:"count"`
	FirstSeen time.Time              `json:"first_seen"`
	LastSeen  time.Time              `json:"last_seen"`
}

// LogCollector counts identical log entries between flushes so that a
// warning raised on every frame is written once per interval.
type LogCollector struct {
	config *CollectionConfig
	logMap map[string]*AggregatedLogEntry
	mutex  sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

func NewLogCollector(config *CollectionConfig) *LogCollector {
	if config.TimeInterval <= 0 {
		config.TimeInterval = 30 * time.Second
	}
	if config.CountThreshold <= 0 {
		config.CountThreshold = 100
	}

	ctx, cancel := context.WithCancel(context.Background())

	collector := &LogCollector{
		config: config,
		logMap: make(map[string]*AggregatedLogEntry),
		ctx:    ctx,
		cancel: cancel,
	}

	// Start periodic flush goroutine
	collector.wg.Add(1)
	go collector.periodicFlush()

	return collector
}

// AddLog records an entry and reports whether it is the first sighting
// since the last flush.
func (d *LogCollector) AddLog(level, message string, fields map[string]interface{}, caller string) bool {
	now := time.Now()
	key := d.generateKey(level, message, fields, caller)

	d.mutex.Lock()
	if entry, exists := d.logMap[key]; exists {
		entry.Count++
		entry.LastSeen = now
		d.mutex.Unlock()
		return false
	}

	d.logMap[key] = &AggregatedLogEntry{
		Level:     level,
		Message:   message,
		Fields:    fields,
		Caller:    caller,
		Count:     1,
		FirstSeen: now,
		LastSeen:  now,
	}

	// Check count threshold
	var pending []AggregatedLogEntry
	if len(d.logMap) >= d.config.CountThreshold {
		pending = d.takeLogs()
	}
	d.mutex.Unlock()

	d.publish(pending)
	return true
}

func (d *LogCollector) generateKey(level, message string, fields map[string]interface{}, caller string) string {
	// Create a consistent hash from level + message + fields + caller
	data := struct {
		Level   string                 `json:"level"`
		Message string                 `json:"message"`
		Fields  map[string]interface{} `json:"fields"`
		Caller  string                 `json:"caller"`
	}{
		Level:   level,
		Message: message,
		Fields:  fields,
		Caller:  caller,
	}

	jsonData, _ := json.Marshal(data)
	hash := sha256.Sum256(jsonData)
	return fmt.Sprintf("%x", hash)
}

func (d *LogCollector) periodicFlush() {
	defer d.wg.Done()

	ticker := time.NewTicker(d.config.TimeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.Flush()
		case <-d.ctx.Done():
			// Final flush before shutdown
			d.Flush()
			return
		}
	}
}

// Flush publishes the repeated entries gathered so far and resets counts.
func (d *LogCollector) Flush() {
	d.mutex.Lock()
	pending := d.takeLogs()
	d.mutex.Unlock()
	d.publish(pending)
}

// takeLogs must be called with the mutex held.
func (d *LogCollector) takeLogs() []AggregatedLogEntry {
	if len(d.logMap) == 0 {
		return nil
	}

	// Only repeats need a summary; first sightings were already written.
	logs := make([]AggregatedLogEntry, 0, len(d.logMap))
	for _, entry := range d.logMap {
		if entry.Count > 1 {
			logs = append(logs, *entry)
		}
	}

	// Reset the map
	d.logMap = make(map[string]*AggregatedLogEntry)
	return logs
}

func (d *LogCollector) publish(logs []AggregatedLogEntry) {
	if len(logs) == 0 || d.config.Publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.config.Publisher.PublishMessage(ctx, d.config.Topic, logs); err != nil {
		fmt.Printf("Failed to send aggregated logs: %v\n", err)
	}
}

func (d *LogCollector) Close() {
	d.once.Do(func() {
		d.cancel()
		d.wg.Wait()
	})
}

// summaryPublisher writes repeat summaries to a zerolog logger.
type summaryPublisher struct {
	zl zerolog.Logger
}

func (p *summaryPublisher) PublishMessage(_ context.Context, topic string, payload interface{}) error {
	logs, ok := payload.([]AggregatedLogEntry)
	if !ok {
		return fmt.Errorf("unexpected payload type: %T", payload)
	}
	for _, entry := range logs {
		level, err := zerolog.ParseLevel(entry.Level)
		if err != nil {
			level = zerolog.WarnLevel
		}
		p.zl.WithLevel(level).
			Str("topic", topic).
			Str("caller_site", entry.Caller).
			Int("repeated", entry.Count-1).
			Time("first_seen", entry.FirstSeen).
			Time("last_seen", entry.LastSeen).
			Fields(entry.Fields).
			Msg(entry.Message)
	}
	return nil
}
