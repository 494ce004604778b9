package security

import (
	"net/http"
	"questionnaire_backend/internal/util"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var (
	// 前端填写答卷时用到的请求头：Bearer token、JSON 和 multipart 附件上传
	corsAllowHeaders = strings.Join([]string{
		"Authorization",
		"Content-Type",
		"Content-Length",
		"Accept",
		"Origin",
		"X-Requested-With",
	}, ", ")
	corsAllowMethods = strings.Join([]string{
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodDelete,
		http.MethodOptions,
	}, ", ")
)

// CORS 只回显 allowedOrigins 中的 Origin；预检请求直接返回 204
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[strings.TrimRight(origin, "/")] = struct{}{}
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Add("Vary", "Origin")
		if origin := c.GetHeader("Origin"); origin != "" {
			if _, ok := allowed[origin]; ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
			}
		}
		h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
		h.Set("Access-Control-Allow-Methods", corsAllowMethods)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

var secureHeaders = [][2]string{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"Referrer-Policy", "no-referrer"},
}

// Secure 写入通用安全响应头，TLS 连接额外加 HSTS
func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, kv := range secureHeaders {
			c.Header(kv[0], kv[1])
		}
		if c.Request.TLS != nil {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		c.Next()
	}
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clients 按客户端 IP 保存令牌桶
type clients struct {
	mu    sync.Mutex
	every rate.Limit
	burst int
	byIP  map[string]*client
}

func (cs *clients) allow(ip string, now time.Time) bool {
	cs.mu.Lock()
	cl, ok := cs.byIP[ip]
	if !ok {
		cl = &client{limiter: rate.NewLimiter(cs.every, cs.burst)}
		cs.byIP[ip] = cl
	}
	cl.lastSeen = now
	cs.mu.Unlock()
	return cl.limiter.AllowN(now, 1)
}

func (cs *clients) evictIdle(now time.Time, idle time.Duration) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for ip, cl := range cs.byIP {
		if now.Sub(cl.lastSeen) > idle {
			delete(cs.byIP, ip)
		}
	}
}

// RateLimiter 每个 IP 在 window 内最多 maxRequests 次请求，超出返回 429；参数非正时不限流
func RateLimiter(maxRequests int, window time.Duration) gin.HandlerFunc {
	if maxRequests <= 0 || window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	cs := &clients{
		every: rate.Every(window / time.Duration(maxRequests)),
		burst: maxRequests,
		byIP:  make(map[string]*client),
	}
	idle := max(3*window, time.Minute)
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for now := range ticker.C {
			cs.evictIdle(now, idle)
		}
	}()

	return func(c *gin.Context) {
		if !cs.allow(c.ClientIP(), time.Now()) {
			util.Error(c, http.StatusTooManyRequests, "Too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
