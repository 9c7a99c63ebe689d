package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/storage"
	"github.com/hugogabrielsalles97-collab/onstructneon-controle-de-obras-sub001/internal/task"
)

// initCmd implements 'obra init'.
func initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the obra project directory",
		Run: func(_ *cobra.Command, _ []string) {
			store := getStore()
			if err := store.Init(force); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Initialized obra at %s", store.BasePath())))
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Reinitialize even if already exists")
	return cmd
}

// listCmd implements 'obra list'.
func listCmd() *cobra.Command {
	var showToDo, showInProgress, showCompleted bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Run: func(_ *cobra.Command, _ []string) {
			filter := storage.StatusFilter{
				ToDo:       showToDo,
				InProgress: showInProgress,
				Completed:  showCompleted,
			}

			tasks, err := getStore().List(filter)
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTaskList(tasks))
		},
	}
	cmd.Flags().BoolVar(&showToDo, "todo", false, "Show only tasks not yet started")
	cmd.Flags().BoolVar(&showInProgress, "in-progress", false, "Show only tasks in progress")
	cmd.Flags().BoolVar(&showCompleted, "completed", false, "Show only completed tasks")
	return cmd
}

// showCmd implements 'obra show'.
func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			t, err := getStore().Load(args[0])
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTask(t))
		},
	}
}

// loadAll lists every task and the requested baseline's tasks. An empty
// baselineID loads no baseline.
func loadAll(baselineID string) ([]task.Task, []task.Task) {
	store := getStore()
	tasks, err := store.List(storage.StatusFilter{})
	if err != nil {
		printError(err)
	}
	if baselineID == "" {
		return tasks, nil
	}
	_, baselines, err := store.LoadBaseline(baselineID)
	if err != nil {
		printError(err)
	}
	return tasks, baselines
}
