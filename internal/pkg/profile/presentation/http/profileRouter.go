package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"recovery-chat/internal/pkg/profile/application/usecase"
	repository "recovery-chat/internal/pkg/profile/persistence/repository/port"
	"recovery-chat/internal/pkg/profile/presentation/controller"
)

// RegisterRoutes mounts the profile, mentor directory and auth endpoints.
func RegisterRoutes(g *gin.RouterGroup, repo repository.ProfileRepository, timeout time.Duration) {
	getProfileCtl := controller.NewGetProfileController(usecase.NewGetProfileUseCase(repo), timeout)
	createProfileCtl := controller.NewCreateProfileController(usecase.NewCreateProfileUseCase(repo), timeout)
	updateProfileCtl := controller.NewUpdateProfileController(usecase.NewUpdateProfileUseCase(repo), timeout)
	listMentorsCtl := controller.NewListMentorsController(usecase.NewListMentorsUseCase(repo), timeout)
	getMentorCtl := controller.NewGetMentorController(usecase.NewGetMentorUseCase(repo), timeout)
	createMentorCtl := controller.NewCreateMentorController(usecase.NewCreateMentorUseCase(repo), timeout)
	updateMentorCtl := controller.NewUpdateMentorController(usecase.NewUpdateMentorUseCase(repo), timeout)
	signUpCtl := controller.NewSignUpController(usecase.NewSignUpUseCase(repo), timeout)
	signInCtl := controller.NewSignInController(usecase.NewSignInUseCase(repo), timeout)
	meCtl := controller.NewCurrentUserController()

	g.GET("/profiles/:userId", getProfileCtl.Handle())
	g.POST("/profiles", createProfileCtl.Handle())
	g.PUT("/profiles/:userId", updateProfileCtl.Handle())

	g.GET("/mentors", listMentorsCtl.Handle())
	g.GET("/mentors/:userId", getMentorCtl.Handle())
	g.POST("/mentors", createMentorCtl.Handle())
	g.PUT("/mentors/:userId", updateMentorCtl.Handle())

	auth := g.Group("/auth")
	auth.POST("/signup", signUpCtl.Handle())
	auth.POST("/signin", signInCtl.Handle())
	auth.GET("/me", meCtl.Handle())
}
