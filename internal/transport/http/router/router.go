package router

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-admin-dashboard/internal/core/config"
	"go-admin-dashboard/internal/session"
	"go-admin-dashboard/internal/transport/http/handler"
	mdw "go-admin-dashboard/internal/transport/http/middleware"
	"go-admin-dashboard/web"
)

type Options struct {
	Log      *zap.Logger
	Handler  *handler.Handler
	Sessions *session.Manager
	Limits   config.Limits
	CORS     config.CORS
	Env      string
}

// New 组装整个引擎：中间件链、模板、静态资源、公共/受保护两组路由
func New(o Options) *gin.Engine {
	if o.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(rate.Limit(o.Limits.RPS), o.Limits.Burst),
		mdw.ConcurrencyLimit(o.Limits.MaxConcurrent),
		mdw.MaxBodyBytes(o.Limits.MaxBodyMB<<20),
		mdw.Timeout(time.Duration(o.Limits.TimeoutSec)*time.Second),
		ginzap.RecoveryWithZap(o.Log, true),
		mdw.Metrics(),
		mdw.AccessLog(o.Log),
	)

	r.SetHTMLTemplate(template.Must(template.New("").ParseFS(web.Templates(), "templates/*.html")))
	r.StaticFS("/static", http.FS(web.Static()))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	h := o.Handler

	// 公共入口；登录 POST 单独按 IP 限速
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusSeeOther, "/login") })
	r.GET("/login", h.ShowLogin)
	r.POST("/login", mdw.RateLimitPerIP(rate.Limit(o.Limits.LoginRPS), o.Limits.LoginBurst), h.Login)
	r.GET("/register", h.ShowRegister)
	r.POST("/register", h.Register)

	// 受保护页面：守卫按会话状态放行或打回登录页
	pages := r.Group("", mdw.AuthGuard(o.Sessions, o.Log))
	pages.GET("/dashboard", h.DashboardPage)
	pages.GET("/products", h.ProductsPage)
	pages.POST("/products", h.CreateProduct)
	pages.POST("/products/:id/delete", h.DeleteProduct)
	pages.GET("/users", h.UsersPage)
	pages.POST("/users", h.CreateUser)
	pages.POST("/users/:id/delete", h.DeleteUser)
	pages.POST("/logout", h.Logout)

	// 只读 JSON 代理
	api := r.Group("/api/v1")
	if len(o.CORS.Origins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = o.CORS.Origins
		cfg.AllowCredentials = true
		api.Use(cors.New(cfg))
	}
	api.Use(mdw.AuthGuard(o.Sessions, o.Log))
	h.MountAPI(api)

	return r
}
