package cmd

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vox-platform/vox-auth-services/internal/events"
)

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Run the Pulsar consumer that appends auth events to the audit log",
	Run: func(cmd *cobra.Command, args []string) {

		// Load the config, initialize the database and set up logging
		commonSetUp()
		defer authDB.Close()

		// Initialize event consumer
		logger := log.With().Str("component", "audit-consumer").Logger()
		consumer, err := events.NewEventConsumer(
			appCfg.Pulsar.URL,
			appCfg.Pulsar.TopicConsumer,
			appCfg.Pulsar.Subscription,
			appCfg.Pulsar.DLQTopic,
			appCfg.Pulsar.MaxRedeliveries,
			&logger,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize event consumer")
		}
		defer consumer.Close()

		// Consume messages
		for {
			event, msg, err := consumer.ReceiveEvent(context.Background())
			if err != nil {
				log.Error().Err(err).Msg("Error receiving message")
				continue
			}

			if err := authDB.InsertEventLog(event.Name, msg.Payload(), event.OccurredAt); err != nil {
				log.Error().Err(err).Str("event", event.Name).Msg("Failed to append event to audit log")
				consumer.Nack(msg)
				continue
			}

			log.Debug().Str("event", event.Name).Msg("audit event recorded")
			consumer.Ack(msg)
		}
	},
}

func init() {
	rootCmd.AddCommand(consumeCmd)
}
