// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/jaycherian/gcp-go-movie-match/internal/core/model"
	"github.com/jaycherian/gcp-go-movie-match/internal/telemetry"
)

func main() {
	telemetry.SetupLogging("server")
	slog.Info("Logging initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := GetConfig()

	shutdownTelemetry, err := telemetry.SetupOpenTelemetry(ctx, cfg)
	if err != nil {
		slog.Error("Failed to setup OpenTelemetry", "error", err)
		log.Fatal(err)
	}
	slog.Info("Tracing initialized")

	InitState()
	slog.Info("Initialized State")

	r := gin.Default()

	// Add OpenTelemetry middleware
	r.Use(otelgin.Middleware(cfg.Application.Name))

	// Permissive CORS so a locally served frontend can call the API
	// during development.
	r.Use(cors.Default())

	apiV1 := r.Group("/api/v1")
	{
		RecommendationRouter(apiV1)
		MovieRouter(apiV1)
		CatalogRouter(apiV1)
		Dashboard(apiV1)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutInSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutInSeconds) * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to listen: ", "error", err)
		}
	}()
	slog.Info("Server Ready", "port", cfg.Server.Port)

	// Wait for an interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutdown Server ...")

	// Give in-flight requests five seconds to finish.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server Shutdown Failed:", "error", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		slog.Error("Telemetry Shutdown Failed:", "error", err)
	}

	log.Println("Server exiting")
}

// RecommendationRouter sets up the recommendation endpoint. All request
// dimensions arrive as query parameters; genres and interests repeat
// (e.g. ?genres=Comedy&genres=Romance).
func RecommendationRouter(r *gin.RouterGroup) {
	rec := r.Group("/recommendations")
	{
		rec.GET("", func(c *gin.Context) {
			limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
			if err != nil {
				limit = 0
			}
			request := &model.RecommendationRequest{
				Occasion:  c.Query("occasion"),
				Genres:    c.QueryArray("genres"),
				Interests: c.QueryArray("interests"),
				Mood:      c.Query("mood"),
				Recency:   c.Query("recency"),
				Limit:     limit,
			}
			out, err := state.recommendationService.Recommend(c.Request.Context(), request)
			if err != nil {
				slog.Error("recommendation failed", "error", err)
				c.Status(http.StatusInternalServerError)
				return
			}
			c.JSON(http.StatusOK, out)
		})
	}
}

// MovieRouter sets up direct catalog routes: single-movie lookup and the
// meta lists that drive the request form.
func MovieRouter(r *gin.RouterGroup) {
	movies := r.Group("/movies")
	{
		movies.GET("/:id", func(c *gin.Context) {
			out, err := state.movieService.Get(c.Param("id"))
			if err != nil {
				c.Status(http.StatusNotFound)
				return
			}
			c.JSON(http.StatusOK, out)
		})
	}
	r.GET("/meta", func(c *gin.Context) {
		c.JSON(http.StatusOK, state.movieService.Meta())
	})
}

// CatalogRouter sets up catalog administration routes. Reload re-reads the
// catalog file and swaps in a freshly built index; on failure the previous
// index keeps serving.
func CatalogRouter(r *gin.RouterGroup) {
	catalog := r.Group("/catalog")
	{
		catalog.POST("/reload", func(c *gin.Context) {
			count, err := state.catalogService.Reload()
			if err != nil {
				slog.Error("catalog reload failed", "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog reload failed"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"movies": count})
		})
	}
}
