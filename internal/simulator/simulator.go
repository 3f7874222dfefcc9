// Package simulator содержит декоративную имитацию движения очередей.
//
// Счётчики показываются на главном экране и никак не связаны с записью:
// талоны, коды бронирования и переходы между экранами от них не зависят.
package simulator

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"
)

// Rand поставляет равномерно распределённые целые числа для выбора счётчика.
type Rand interface {
	Intn(n int) int
}

// Simulator периодически увеличивает один случайный счётчик очереди.
type Simulator struct {
	interval time.Duration
	rnd      Rand

	mu     sync.Mutex
	codes  []string
	counts map[string]int
}

// New создаёт имитацию со стартовыми счётчиками по кодам услуг.
// Нулевой rnd заменяется источником math/rand.
func New(initial map[string]int, interval time.Duration, rnd Rand) *Simulator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	codes := make([]string, 0, len(initial))
	counts := make(map[string]int, len(initial))
	for code, n := range initial {
		codes = append(codes, code)
		counts[code] = n
	}
	sort.Strings(codes)

	return &Simulator{
		interval: interval,
		rnd:      rnd,
		codes:    codes,
		counts:   counts,
	}
}

// Run запускает периодическое обновление счётчиков и блокируется до отмены
// контекста. Таймер останавливается при выходе и не утекает.
func (s *Simulator) Run(ctx context.Context) {
	if len(s.codes) == 0 {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

func (s *Simulator) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	code := s.codes[s.rnd.Intn(len(s.codes))]
	s.counts[code]++
}

// Snapshot возвращает копию текущих счётчиков для отображения.
func (s *Simulator) Snapshot() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int, len(s.counts))
	for code, n := range s.counts {
		out[code] = n
	}
	return out
}
