package main

import (
	"context"
	"log/slog"
	"os"

	"local-library/config"
	"local-library/database"
	"local-library/internal/api/authors"
	"local-library/internal/api/bookinstances"
	"local-library/internal/api/books"
	"local-library/internal/api/genres"
	"local-library/internal/api/pages"
	routes "local-library/internal/app/http"
	"local-library/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	client, err := database.Connect(context.Background(), config.MONGODB_URI)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	logger.Info("database connection established")

	st := store.New(client.Database(config.DB_NAME))

	r := gin.Default()
	r.LoadHTMLGlob("templates/*.tmpl")

	routes.RegisterRoutes(r, routes.Handlers{
		Pages:         pages.NewHandler(logger, st.Books, st.BookInstances, st.Authors, st.Genres),
		Authors:       authors.NewHandler(logger, st.Authors, st.Books),
		Books:         books.NewHandler(logger, st.Books, st.Authors, st.Genres, st.BookInstances),
		Genres:        genres.NewHandler(logger, st.Genres, st.Books),
		BookInstances: bookinstances.NewHandler(logger, st.BookInstances, st.Books),
	})

	logger.Info("starting server", "port", config.PORT)
	if err := r.Run(":" + config.PORT); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
