package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"studio/internal/history"
	"studio/internal/studio"

	"github.com/spf13/cobra"
)

func init() {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the saved session history",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved sessions",
		Run:   runHistoryList,
	}
	listCmd.Flags().Bool("json", false, "Output raw JSON")

	showCmd := &cobra.Command{
		Use:   "show <n|id>",
		Short: "Show one saved session",
		Args:  cobra.ExactArgs(1),
		Run:   runHistoryShow,
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all saved sessions",
		Run:   runHistoryClear,
	}

	historyCmd.AddCommand(listCmd, showCmd, clearCmd)
	RootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) {
	store, slot, err := openHistoryStore()
	if err != nil {
		exitErr("open history", err)
	}
	defer slot.Close()

	entries := store.Entries()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		b, _ := json.MarshalIndent(entries, "", "  ")
		fmt.Println(string(b))
		return
	}

	if len(entries) == 0 {
		fmt.Println("no history")
		return
	}
	for i, e := range entries {
		fmt.Printf("%3d. [%s] %s (%s) %s\n", i+1, e.Status, e.ContentIdea, e.ContentType, e.CreatedAt)
	}
}

func runHistoryShow(cmd *cobra.Command, args []string) {
	store, slot, err := openHistoryStore()
	if err != nil {
		exitErr("open history", err)
	}
	defer slot.Close()

	entry, ok := findEntry(store.Entries(), args[0])
	if !ok {
		fmt.Fprintf(os.Stderr, "error: no history entry %s\n", args[0])
		os.Exit(1)
	}

	fmt.Printf("id: %s\nstatus: %s\nidea: %s\ntype: %s\n", entry.ID, entry.Status, entry.ContentIdea, entry.ContentType)
	if entry.Notes != "" {
		fmt.Printf("notes: %s\n", entry.Notes)
	}
	if entry.Script != nil {
		fmt.Println()
		fmt.Println(studio.FormatScript(*entry.Script))
	}
	if entry.VideoScript != nil && entry.VideoScript.Generated() {
		fmt.Println()
		fmt.Println(entry.VideoScript.FullText)
	}
}

func runHistoryClear(cmd *cobra.Command, args []string) {
	store, slot, err := openHistoryStore()
	if err != nil {
		exitErr("open history", err)
	}
	defer slot.Close()

	store.Clear()
	fmt.Println("history cleared")
}

// findEntry 按 1 起始序号或 ID 前缀定位条目
// findEntry locates an entry by 1-based index or ID prefix
func findEntry(entries []history.Entry, arg string) (history.Entry, bool) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n >= 1 && n <= len(entries) {
			return entries[n-1], true
		}
		return history.Entry{}, false
	}
	for _, e := range entries {
		if strings.HasPrefix(e.ID, arg) {
			return e, true
		}
	}
	return history.Entry{}, false
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
