package quotes

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// History is the persisted set of quotes already used in past runs.
// Membership is tested on the normalized form; Append stores the raw lines.
type History interface {
	Contains(quote string) bool
	// Append records newly used quotes. Entries become visible to Contains
	// immediately, including within the same run.
	Append(quotes []string) error
	Len() int
}

// Normalize lower-cases a quote and strips quotation characters so slight
// rewordings of the same line still collide.
func Normalize(quote string) string {
	s := strings.ToLower(quote)
	s = strings.ReplaceAll(s, `"`, "")
	s = strings.ReplaceAll(s, "'", "")
	return strings.TrimSpace(s)
}

// FileHistory keeps the history in a newline-delimited text file, one raw
// quote per line, appended across runs. The serve and kafka modes call it
// from one goroutine per job, so the in-memory set and the file append are
// guarded by a mutex.
type FileHistory struct {
	mu   sync.Mutex
	path string
	seen map[string]struct{}
}

// OpenFileHistory loads the history file if present. A missing file is an
// empty history, not an error.
func OpenFileHistory(path string) (*FileHistory, error) {
	h := &FileHistory{path: path, seen: make(map[string]struct{})}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return h, nil
		}
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		h.seen[Normalize(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}
	return h, nil
}

func (h *FileHistory) Contains(quote string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.seen[Normalize(quote)]
	return ok
}

func (h *FileHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.seen)
}

func (h *FileHistory) Append(quotes []string) error {
	if len(quotes) == 0 {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history file for append: %w", err)
	}
	defer f.Close()

	for _, q := range quotes {
		if _, err := fmt.Fprintln(f, q); err != nil {
			return fmt.Errorf("failed to append quote to history: %w", err)
		}
		h.seen[Normalize(q)] = struct{}{}
	}
	return nil
}

// redisHistoryKey is the set holding normalized quotes when Redis is used.
const redisHistoryKey = "quotereel:history"

// RedisHistory keeps the used-quote set in a Redis set, letting several
// hosts share one history. Normalized quotes are the set members.
type RedisHistory struct {
	rdb  *redis.Client
	size int
}

// OpenRedisHistory connects to Redis and preloads the current set size.
func OpenRedisHistory(addr, password string, db int) (*RedisHistory, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	n, err := rdb.SCard(ctx, redisHistoryKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history set size: %w", err)
	}

	return &RedisHistory{rdb: rdb, size: int(n)}, nil
}

func (h *RedisHistory) Contains(quote string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ok, err := h.rdb.SIsMember(ctx, redisHistoryKey, Normalize(quote)).Result()
	if err != nil {
		// Treat a flaky Redis as "unknown"; worst case a quote repeats.
		return false
	}
	return ok
}

func (h *RedisHistory) Len() int { return h.size }

func (h *RedisHistory) Append(quotes []string) error {
	if len(quotes) == 0 {
		return nil
	}

	members := make([]interface{}, 0, len(quotes))
	for _, q := range quotes {
		members = append(members, Normalize(q))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	added, err := h.rdb.SAdd(ctx, redisHistoryKey, members...).Result()
	if err != nil {
		return fmt.Errorf("failed to append quotes to redis history: %w", err)
	}
	h.size += int(added)
	return nil
}

// OpenHistory picks the history backend: Redis when REDIS_ADDR is set and
// reachable, the local file otherwise.
func OpenHistory(path string) (History, error) {
	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		h, err := OpenRedisHistory(addr, os.Getenv("REDIS_PASSWORD"), 0)
		if err == nil {
			return h, nil
		}
		// Fall through to the file store; a dead Redis should not stop a run.
		log.Printf("Warning: redis history unavailable: %v. Using file history.", err)
	}
	return OpenFileHistory(path)
}
