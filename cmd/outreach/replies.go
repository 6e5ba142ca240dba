package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"outreach_backend/internal/app/di"
)

// trackRepliesCmd はIMAP受信箱を確認して返信済みのメールを更新します
var trackRepliesCmd = &cobra.Command{
	Use:   "track-replies",
	Short: "Mark sent emails as responded when a reply arrived",
	Args:  cobra.NoArgs,
	RunE:  runTrackReplies,
}

func runTrackReplies(cmd *cobra.Command, _ []string) error {
	_, closer, err := loadConfig()
	if err != nil {
		return err
	}
	defer closer.Close()

	db, err := openDB()
	if err != nil {
		return err
	}

	res, err := di.NewReplyTracker(db).Track(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "checked %d emails, %d responded\n", res.Checked, res.Responded)
	return nil
}
