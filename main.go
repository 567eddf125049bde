package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"moonlandpos/api"
	"moonlandpos/config"
	"moonlandpos/middleware"
	"moonlandpos/notify"
	"moonlandpos/routes"
	"moonlandpos/session"
	"moonlandpos/storage"
	"moonlandpos/store"
	"moonlandpos/utils"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("No .env file, relying on the environment")
	}

	gin.SetMode(gin.ReleaseMode)
	log.Printf("Running in %s mode", gin.Mode())

	r := gin.Default()

	middleware.InitMetrics()
	r.Use(middleware.PrometheusMiddleware())
	r.GET("/metrics", func(c *gin.Context) {
		promhttp.Handler().ServeHTTP(c.Writer, c.Request)
	})

	origins := []string{"http://localhost:5173"}
	if env := os.Getenv("UI_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	config.ConnectLocalStore()

	gateway := api.New(os.Getenv("GATEWAY_URL"), os.Getenv("GATEWAY_API_KEY"))
	shifts := storage.NewMongoShiftStore(config.ShiftCollection)
	st := store.New(gateway, shifts, notify.NewLogNotifier())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := st.RestoreShift(ctx); err != nil {
		log.Printf("restore shift: %v", err)
	}
	cancel()

	provider := session.NewProvider(os.Getenv("JWT_SECRET"))

	s := gocron.NewScheduler(time.Local)
	s.Every(1).Day().At("08:00").Do(utils.SendLowStockReport, st)
	s.Every(5).Minutes().Do(utils.ReconcileInventory, st)
	s.StartAsync()

	routes.InitializeRoutes(r, st, provider)

	port := os.Getenv("PORT")
	if port == "" {
		port = "1414"
	}

	r.Run(":" + port)
}
