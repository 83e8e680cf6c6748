package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/mauv0809/kindred/internal/dating"
	"github.com/spf13/cobra"
)

var (
	swipeFrom   string
	swipeTo     string
	swipeAction string

	messageFrom string
	messageTo   string
	messageText string
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(swipeCmd)
	rootCmd.AddCommand(messageCmd)

	swipeCmd.Flags().StringVar(&swipeFrom, "from", "", "The swiping user id")
	swipeCmd.Flags().StringVar(&swipeTo, "to", "", "The swiped user id")
	swipeCmd.Flags().StringVar(&swipeAction, "action", string(dating.ActionLike), "like or pass")
	_ = swipeCmd.MarkFlagRequired("from")
	_ = swipeCmd.MarkFlagRequired("to")

	messageCmd.Flags().StringVar(&messageFrom, "from", "", "The sender user id")
	messageCmd.Flags().StringVar(&messageTo, "to", "", "The receiver user id")
	messageCmd.Flags().StringVar(&messageText, "text", "", "The message text")
	_ = messageCmd.MarkFlagRequired("from")
	_ = messageCmd.MarkFlagRequired("to")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Get event counters and the number of matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/stats")
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches <userId>",
	Short: "List the matches of a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/users/" + url.PathEscape(args[0]) + "/matches")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var swipeCmd = &cobra.Command{
	Use:   "swipe",
	Short: "Create a swipe and publish its creation event",
	RunE: func(cmd *cobra.Command, args []string) error {
		action := dating.Action(swipeAction)
		if action != dating.ActionLike && action != dating.ActionPass {
			return fmt.Errorf("unknown action %q", swipeAction)
		}
		src, closer, err := newSource(cmd.Context())
		if err != nil {
			return err
		}
		defer closer()

		id, err := src.CreateSwipe(cmd.Context(), dating.Swipe{SwiperID: swipeFrom, TargetID: swipeTo, Action: action})
		if err != nil {
			return err
		}
		fmt.Printf("Created swipe %s\n", id)
		return nil
	},
}

var messageCmd = &cobra.Command{
	Use:   "message",
	Short: "Create a message and publish its creation event",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, closer, err := newSource(cmd.Context())
		if err != nil {
			return err
		}
		defer closer()

		id, err := src.CreateMessage(cmd.Context(), dating.Message{SenderID: messageFrom, ReceiverID: messageTo, Text: messageText})
		if err != nil {
			return err
		}
		fmt.Printf("Created message %s\n", id)
		return nil
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
