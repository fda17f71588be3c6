package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/vnkhanh/movie-streaming-backend/controllers"
	"github.com/vnkhanh/movie-streaming-backend/middleware"
	"github.com/vnkhanh/movie-streaming-backend/ws"
	"gorm.io/gorm"
)

func SetupRouter(r *gin.Engine, db *gorm.DB) *gin.Engine {
	controllers.InitModerationService(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/logingoogle", controllers.GoogleLogin)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	// Public: không cần đăng nhập, có token thì gắn user vào context
	public := api.Group("")
	{
		public.Use(middleware.OptionalAuthMiddleware())

		// Gửi video ẩn danh chờ duyệt
		public.POST("/uploads", controllers.SubmitUpload)
		public.POST("/uploads/:id/poster", controllers.AttachPosterToUpload)

		// Duyệt phim
		public.GET("/movies", controllers.GetMovies)
		public.GET("/movies/:slug", controllers.GetMovieBySlug)
		public.GET("/movies/:slug/watch", controllers.WatchMovie)
		public.GET("/comments/:movie_id", controllers.GetComments)

		public.GET("/categories", controllers.GetCategoriesPublic)
		public.GET("/genres", controllers.GetGenresPublic)
	}

	user := api.Group("/user")
	{
		user.Use(middleware.AuthMiddleware(), middleware.DBMiddleware(db))

		user.POST("/change-password", controllers.ChangePassword)

		// Yêu thích
		user.POST("/favorites/:movie_id", controllers.AddFavorite)
		user.DELETE("/favorites/:movie_id", controllers.RemoveFavorite)
		user.GET("/favorites", controllers.GetFavorites)

		// Lịch sử xem
		user.PUT("/history", controllers.UpdateWatchHistory)
		user.GET("/history", controllers.GetWatchHistory)
		user.DELETE("/history/:movie_id", controllers.DeleteWatchHistory)

		// Bình luận
		user.POST("/comments", controllers.CreateComment)
		user.DELETE("/comments/:id", controllers.DeleteComment)

		// Đánh giá
		user.POST("/ratings", controllers.RateMovie)
		user.DELETE("/ratings/:movie_id", controllers.DeleteRating)

		// Thông báo
		user.GET("/notifications", controllers.GetNotifications)
		user.PATCH("/notifications/:id/read", controllers.MarkNotificationRead)
		user.PATCH("/notifications/read-all", controllers.MarkAllNotificationsRead)
	}

	admin := api.Group("/admin")
	{
		admin.Use(middleware.AuthMiddleware(), middleware.DBMiddleware(db), middleware.RequireRoles("admin"))

		// Kiểm duyệt video gửi lên
		admin.GET("/uploads", controllers.GetUploads)
		admin.POST("/uploads/:id/approve", controllers.ApproveUpload)
		admin.POST("/uploads/:id/reject", controllers.RejectUpload)
		admin.PUT("/uploads/:id", controllers.UpdateApprovedUpload)
		admin.DELETE("/uploads/:id", controllers.DeleteUpload)
		admin.DELETE("/uploads/:id/takedown", controllers.TakedownUpload)

		// Quản lý phim
		admin.GET("/movies", controllers.GetMoviesAdmin)
		admin.PATCH("/movies/:id/toggle-hidden", controllers.ToggleMovieHidden)

		// Quản lý danh mục
		admin.POST("/categories", controllers.CreateCategory)
		admin.GET("/categories", controllers.GetCategories)
		admin.GET("/categories/:id", controllers.GetCategoryDetail)
		admin.PUT("/categories/:id", controllers.UpdateCategory)
		admin.DELETE("/categories/:id", controllers.DeleteCategory)
		admin.PATCH("/categories/:id/toggle-status", controllers.ToggleCategoryStatus)

		// Quản lý thể loại
		admin.POST("/genres", controllers.CreateGenre)
		admin.GET("/genres", controllers.GetGenres)
		admin.PUT("/genres/:id", controllers.UpdateGenre)
		admin.DELETE("/genres/:id", controllers.DeleteGenre)
		admin.PATCH("/genres/:id/toggle-status", controllers.ToggleGenreStatus)
	}

	r.GET("/ws/notifications", ws.HandleUserWebSocket)
	r.GET("/ws/admin", ws.HandleAdminWebSocket)

	return r
}
