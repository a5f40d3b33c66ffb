package cmd

import (
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vox-platform/vox-auth-services/api/handlers"
	"github.com/vox-platform/vox-auth-services/api/middleware"
	"github.com/vox-platform/vox-auth-services/api/services"
	docs "github.com/vox-platform/vox-auth-services/docs"
	"github.com/vox-platform/vox-auth-services/internal/events"

	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Vox Auth Services API
// @version v1
// @description Token issuance and user, group and policy management for the Vox platform.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server for handling API requests",
	Run: func(cmd *cobra.Command, args []string) {

		// Load the config, initialize the database and set up logging
		commonSetUp()
		defer authDB.Close()

		// Initialize event publisher
		publisher, err := events.NewEventPublisher(appCfg.Pulsar.URL, appCfg.Pulsar.TopicProducer)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize event publisher")
		}
		defer publisher.Close()

		service := &services.AuthService{
			Config:    appCfg,
			DB:        authDB,
			Publisher: publisher,
		}

		// Remove expired sessions in the background so revoked and stale
		// tokens stop validating without waiting for a request.
		stop := make(chan struct{})
		defer close(stop)
		go func() {
			ticker := time.NewTicker(time.Duration(appCfg.Token.CleanupInterval))
			defer ticker.Stop()
			logger := log.With().Str("component", "session-cleanup").Logger()
			for {
				select {
				case <-ticker.C:
					service.RemoveExpiredSessions(&logger)
				case <-stop:
					return
				}
			}
		}()

		// Create routes
		r := mux.NewRouter()
		secret := []byte(appCfg.Token.Secret)

		// Token routes authenticate with basic auth or the token itself
		open := r.PathPrefix(appCfg.BasePath).Subrouter()
		open.Use(middleware.WithLogger)
		open.HandleFunc("/token", handlers.CreateToken(service)).Methods(http.MethodPost)
		open.HandleFunc("/token/{token}", handlers.GetToken(service)).Methods(http.MethodGet)
		open.HandleFunc("/token/{token}", handlers.CheckToken(service)).Methods(http.MethodHead)
		open.HandleFunc("/token/{token}", handlers.DeleteToken(service)).Methods(http.MethodDelete)

		// Everything else requires a bearer token and a matching permission
		api := r.PathPrefix(appCfg.BasePath).Subrouter()
		api.Use(middleware.WithLogger)
		api.Use(middleware.TokenMiddleware(secret, authDB))

		guard := func(permission string, h http.Handler) http.Handler {
			return middleware.RequireACL(permission)(h)
		}

		// Group routes
		api.Handle("/groups", guard("auth.groups.create", handlers.CreateGroup(service))).Methods(http.MethodPost)
		api.Handle("/groups", guard("auth.groups.read", handlers.GetGroups(service))).Methods(http.MethodGet)
		api.Handle("/groups/{group_uuid}", guard("auth.groups.{group_uuid}.read", handlers.GetGroup(service))).Methods(http.MethodGet)
		api.Handle("/groups/{group_uuid}", guard("auth.groups.{group_uuid}.update", handlers.UpdateGroup(service))).Methods(http.MethodPut)
		api.Handle("/groups/{group_uuid}", guard("auth.groups.{group_uuid}.delete", handlers.DeleteGroup(service))).Methods(http.MethodDelete)

		// Group membership routes
		api.Handle("/groups/{group_uuid}/users", guard("auth.groups.{group_uuid}.users.read", handlers.GetGroupUsers(service))).Methods(http.MethodGet)
		api.Handle("/groups/{group_uuid}/users/{user_uuid}", guard("auth.groups.{group_uuid}.users.{user_uuid}.create", handlers.AddGroupUser(service))).Methods(http.MethodPut)
		api.Handle("/groups/{group_uuid}/users/{user_uuid}", guard("auth.groups.{group_uuid}.users.{user_uuid}.delete", handlers.RemoveGroupUser(service))).Methods(http.MethodDelete)

		// Group policy routes
		api.Handle("/groups/{group_uuid}/policies", guard("auth.groups.{group_uuid}.policies.read", handlers.GetGroupPolicies(service))).Methods(http.MethodGet)
		api.Handle("/groups/{group_uuid}/policies/{policy_uuid}", guard("auth.groups.{group_uuid}.policies.{policy_uuid}.create", handlers.AddGroupPolicy(service))).Methods(http.MethodPut)
		api.Handle("/groups/{group_uuid}/policies/{policy_uuid}", guard("auth.groups.{group_uuid}.policies.{policy_uuid}.delete", handlers.RemoveGroupPolicy(service))).Methods(http.MethodDelete)

		// User routes
		api.Handle("/users", guard("auth.users.create", handlers.CreateUser(service))).Methods(http.MethodPost)
		api.Handle("/users", guard("auth.users.read", handlers.GetUsers(service))).Methods(http.MethodGet)
		api.Handle("/users/{user_uuid}", guard("auth.users.{user_uuid}.read", handlers.GetUser(service))).Methods(http.MethodGet)
		api.Handle("/users/{user_uuid}", guard("auth.users.{user_uuid}.delete", handlers.DeleteUser(service))).Methods(http.MethodDelete)
		api.Handle("/users/{user_uuid}/groups", guard("auth.users.{user_uuid}.groups.read", handlers.GetUserGroups(service))).Methods(http.MethodGet)

		// User policy routes
		api.Handle("/users/{user_uuid}/policies", guard("auth.users.{user_uuid}.policies.read", handlers.GetUserPolicies(service))).Methods(http.MethodGet)
		api.Handle("/users/{user_uuid}/policies/{policy_uuid}", guard("auth.users.{user_uuid}.policies.{policy_uuid}.create", handlers.AddUserPolicy(service))).Methods(http.MethodPut)
		api.Handle("/users/{user_uuid}/policies/{policy_uuid}", guard("auth.users.{user_uuid}.policies.{policy_uuid}.delete", handlers.RemoveUserPolicy(service))).Methods(http.MethodDelete)

		// Policy routes
		api.Handle("/policies", guard("auth.policies.create", handlers.CreatePolicy(service))).Methods(http.MethodPost)
		api.Handle("/policies", guard("auth.policies.read", handlers.GetPolicies(service))).Methods(http.MethodGet)
		api.Handle("/policies/{policy_uuid}", guard("auth.policies.{policy_uuid}.read", handlers.GetPolicy(service))).Methods(http.MethodGet)
		api.Handle("/policies/{policy_uuid}", guard("auth.policies.{policy_uuid}.delete", handlers.DeletePolicy(service))).Methods(http.MethodDelete)

		// Docs
		docs.SwaggerInfo.Host = appCfg.Host
		docs.SwaggerInfo.BasePath = appCfg.BasePath
		r.PathPrefix(appCfg.DocsPath).Handler(httpSwagger.Handler(
			httpSwagger.URL(path.Join(appCfg.DocsPath, "/doc.json")),
			httpSwagger.DeepLinking(true),
			httpSwagger.DocExpansion("none"),
			httpSwagger.DomID("swagger-ui"),
		)).Methods(http.MethodGet)

		log.Info().Msg(fmt.Sprintf("Server started at %s:%d", host, port))

		if err := http.ListenAndServe(fmt.Sprintf("%s:%d", host, port),
			r); err != nil {

			log.Error().Err(err).Msg("could not start server")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&host, "host", "0.0.0.0", "host to run the server on")
	serveCmd.Flags().IntVar(&port, "port", 8080, "port to run the server on")
}
