package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sakib/coinledger/pkg/backup"
)

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	backupCmd.AddCommand(backupListCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create, restore and list ledger backups",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Snapshot every collection into a zip archive",
	RunE:  runBackupCreate,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore ARCHIVE",
	Short: "Replace the ledger's collections with an archive's contents",
	Long: `Replace the ledger's collections with an archive's contents.
Stop the server first: restore must not race live traffic.`,
	Args: cobra.ExactArgs(1),
	RunE: runBackupRestore,
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available backup archives",
	RunE:  runBackupList,
}

func backupManager() (*backup.Manager, error) {
	cfg, eco, store, logger, err := setup(false)
	if err != nil {
		return nil, err
	}
	return backup.New(store, cfg.BackupDir, eco.Backup.MaxBackups, logger)
}

func runBackupCreate(cmd *cobra.Command, args []string) error {
	manager, err := backupManager()
	if err != nil {
		return err
	}
	path, err := manager.Create(cmd.Context())
	if err != nil {
		return fmt.Errorf("create backup: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func runBackupRestore(cmd *cobra.Command, args []string) error {
	manager, err := backupManager()
	if err != nil {
		return err
	}
	if err := manager.Restore(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("restore backup: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "restored", args[0])
	return nil
}

func runBackupList(cmd *cobra.Command, args []string) error {
	manager, err := backupManager()
	if err != nil {
		return err
	}
	manifests, err := manager.List()
	if err != nil {
		return fmt.Errorf("list backups: %w", err)
	}
	if len(manifests) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no backups found")
		return nil
	}
	for _, m := range manifests {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  users=%d payments=%d transactions=%d\n",
			m.File, m.CreatedAt.Format("2006-01-02 15:04:05"), m.Users, m.Payments, m.Transactions)
	}
	return nil
}
