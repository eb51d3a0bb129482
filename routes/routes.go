package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sim1zzo/vegan-nutrition-tracker/config"
	"github.com/sim1zzo/vegan-nutrition-tracker/controllers"
	"github.com/sim1zzo/vegan-nutrition-tracker/middlewares"
	"github.com/sim1zzo/vegan-nutrition-tracker/services"
)

// SetupRouter wires every endpoint. All dependencies flow in through
// constructors; nothing reads globals.
func SetupRouter(db *gorm.DB, cfg *config.Config, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger(log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	authSvc := services.NewAuthService(db, cfg.JWTSecret)
	alimentoSvc := services.NewAlimentoService(db)
	giornataSvc := services.NewGiornataService(db)
	ricettaSvc := services.NewRicettaService(db)
	storicoSvc := services.NewStoricoService(db)

	authCtl := controllers.NewAuthController(authSvc)
	alimentoCtl := controllers.NewAlimentoController(alimentoSvc)
	giornataCtl := controllers.NewGiornataController(giornataSvc, storicoSvc)
	ricettaCtl := controllers.NewRicettaController(ricettaSvc)

	richiedeAuth := middlewares.AuthMiddleware(db, cfg.JWTSecret)
	authOpzionale := middlewares.OptionalAuthMiddleware(db, cfg.JWTSecret)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Server attivo"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/registrazione", authCtl.Register)
		auth.POST("/login", authCtl.Login)

		protetto := auth.Group("")
		protetto.Use(richiedeAuth)
		{
			protetto.GET("/profilo", authCtl.GetProfilo)
			protetto.PUT("/profilo", authCtl.UpdateProfilo)
			protetto.PUT("/password", authCtl.ChangePassword)
			protetto.DELETE("/account", authCtl.DeleteAccount)
		}
	}

	alimenti := r.Group("/alimenti")
	{
		// Public listing; a valid token merges the caller's own foods in.
		alimenti.GET("", authOpzionale, alimentoCtl.List)
		alimenti.GET("/categoria/:categoria", alimentoCtl.ByCategoria)

		protetto := alimenti.Group("")
		protetto.Use(richiedeAuth)
		{
			protetto.GET("/miei", alimentoCtl.Miei)
			protetto.POST("", alimentoCtl.Create)
			protetto.PUT("/:id", alimentoCtl.Update)
			protetto.DELETE("/:id", alimentoCtl.Delete)
			protetto.POST("/:id/verifica", alimentoCtl.Verifica)
		}
	}

	giornate := r.Group("/giornate")
	giornate.Use(richiedeAuth)
	{
		giornate.GET("", giornataCtl.List)
		giornate.POST("", giornataCtl.Create)
		giornate.PUT("/:id", giornataCtl.Update)
		giornate.POST("/:id/pasti/:pasto", giornataCtl.AddVoce)
		giornate.DELETE("/:id/pasti/:pasto/:indice", giornataCtl.RemoveVoce)
		giornate.POST("/:id/ricette/:ricettaId/:pasto", giornataCtl.AddRicetta)
	}

	ricette := r.Group("/ricette")
	ricette.Use(richiedeAuth)
	{
		ricette.GET("", ricettaCtl.List)
		ricette.POST("", ricettaCtl.Create)
		ricette.DELETE("/:id", ricettaCtl.Delete)
	}

	return r
}
