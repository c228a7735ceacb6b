package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Look up indexed tracks and playlists",
}

var findTrackCmd = &cobra.Command{
	Use:   "track [track-id]",
	Short: "Look up a track by id or by field value",
	Long: `Prints an indexed track as JSON.

Pass a Track ID, or --field and --value to return the first track whose
field exactly equals the value. Integer and boolean fields are parsed,
string fields match their whole value.

Examples:
  tunesearch find track 55
  tunesearch find track --field Artist --value "Bar"
  tunesearch find track --field Year --value 1999`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{annotationNeeds: needsIndex},
	RunE:        runFindTrack,
}

var findPlaylistCmd = &cobra.Command{
	Use:         "playlist <playlist-id>",
	Short:       "Look up a playlist by id",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{annotationNeeds: needsIndex},
	RunE:        runFindPlaylist,
}

func init() {
	findTrackCmd.Flags().String("field", "", "track field to match")
	findTrackCmd.Flags().String("value", "", "value the field must equal")
	findCmd.AddCommand(findTrackCmd)
	findCmd.AddCommand(findPlaylistCmd)
	rootCmd.AddCommand(findCmd)
}

func runFindTrack(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	field, _ := cmd.Flags().GetString("field")
	value, _ := cmd.Flags().GetString("value")

	switch {
	case len(args) == 1 && field != "":
		return errors.New("pass either a track id or --field, not both")
	case len(args) == 1:
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		track, err := searchService.GetTrack(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("track %d: %w", id, err)
		}
		return printJSON(cmd, track)
	case field != "":
		track, err := searchService.FindTrack(cmd.Context(), field, value)
		if err != nil {
			return fmt.Errorf("track with %s %q: %w", field, value, err)
		}
		return printJSON(cmd, track)
	default:
		return errors.New("a track id or --field is required")
	}
}

func runFindPlaylist(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	playlist, err := searchService.GetPlaylist(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("playlist %d: %w", id, err)
	}
	return printJSON(cmd, playlist)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: must be an integer", arg)
	}
	return id, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
