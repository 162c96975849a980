package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/jhoicas/rentalops/pkg/logger"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitorStore un limitador token-bucket por IP, con limpieza de entradas viejas.
type visitorStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	ttl      time.Duration
	now      func() time.Time
}

func newVisitorStore(perMinute, burst int, ttl time.Duration) *visitorStore {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 1
	}
	return &visitorStore{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    burst,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *visitorStore) allow(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	v, ok := s.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (s *visitorStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for ip, v := range s.visitors {
		if now.Sub(v.lastSeen) > s.ttl {
			delete(s.visitors, ip)
		}
	}
}

func (s *visitorStore) cleanupLoop(done <-chan struct{}) {
	ticker := time.NewTicker(s.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-done:
			return
		}
	}
}

// RateLimit limita por IP (perMinute peticiones por minuto, con ráfaga burst).
// Cuando se excede el límite responde con onLimited; si es nil, 429 en texto plano.
// done detiene la limpieza periódica (nil = vive con el proceso).
func RateLimit(perMinute, burst int, log *logger.Logger, onLimited fiber.Handler, done <-chan struct{}) fiber.Handler {
	store := newVisitorStore(perMinute, burst, 3*time.Minute)
	go store.cleanupLoop(done)

	return func(c *fiber.Ctx) error {
		ip := c.IP()
		if store.allow(ip) {
			return c.Next()
		}
		log.Warn().Str("ip", ip).Str("path", c.Path()).Msg("límite de peticiones excedido")
		c.Set(fiber.HeaderRetryAfter, "60")
		if onLimited != nil {
			return onLimited(c)
		}
		return c.Status(fiber.StatusTooManyRequests).SendString("demasiadas peticiones, intente más tarde")
	}
}
