package robotevents

import (
	"strings"
	"sync"
)

// keyPool rotates through API keys. A rejected key is skipped until every
// key has been rejected.
type keyPool struct {
	mu       sync.Mutex
	keys     []string
	current  int
	rejected map[int]bool
}

func newKeyPool(keys []string) *keyPool {
	cleaned := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, key)
	}
	return &keyPool{keys: cleaned, rejected: make(map[int]bool, len(cleaned))}
}

func (p *keyPool) Len() int {
	return len(p.keys)
}

func (p *keyPool) Current() (int, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.keys) == 0 {
		return -1, ""
	}
	return p.current, p.keys[p.current]
}

// Reject marks idx rejected and advances to the next usable key. It reports
// whether every key is now rejected.
func (p *keyPool) Reject(idx int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if idx < 0 || idx >= len(p.keys) {
		return len(p.rejected) >= len(p.keys)
	}
	p.rejected[idx] = true
	for step := 1; step <= len(p.keys); step++ {
		next := (idx + step) % len(p.keys)
		if !p.rejected[next] {
			p.current = next
			return false
		}
	}
	return true
}

func (p *keyPool) Accept(idx int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.rejected, idx)
}

func (p *keyPool) Exhausted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.keys) > 0 && len(p.rejected) >= len(p.keys)
}

func (p *keyPool) ResetRejections() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.rejected)
}
