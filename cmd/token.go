package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/portfolio/internal/audit"
	"github.com/ziadkadry99/portfolio/internal/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage admin API tokens",
	Long: `Create, list and revoke bearer tokens for the admin endpoints
(/api/contact/messages, /api/notifications).

Tokens are stored hashed; the plaintext is printed once on creation.`,
}

var tokenCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a token",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenCreate,
}

var tokenListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tokens",
	RunE:  runTokenList,
}

var tokenRevokeCmd = &cobra.Command{
	Use:   "revoke <id>",
	Short: "Revoke a token",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenRevoke,
}

func init() {
	tokenCreateCmd.Flags().String("scope", string(auth.ScopeAdmin), "Token scope: read, readwrite or admin")
	tokenCreateCmd.Flags().Duration("ttl", 0, "Token lifetime, e.g. 720h (0 never expires)")

	tokenCmd.AddCommand(tokenCreateCmd)
	tokenCmd.AddCommand(tokenListCmd)
	tokenCmd.AddCommand(tokenRevokeCmd)
	rootCmd.AddCommand(tokenCmd)
}

func openTokenStore() (*auth.Store, *audit.Store, func(), error) {
	database, err := openDatabase(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	return auth.NewStore(database), audit.NewStore(database), func() { database.Close() }, nil
}

func runTokenCreate(cmd *cobra.Command, args []string) error {
	scope, _ := cmd.Flags().GetString("scope")
	ttl, _ := cmd.Flags().GetDuration("ttl")

	store, trail, closeDB, err := openTokenStore()
	if err != nil {
		return err
	}
	defer closeDB()

	plain, tok, err := store.Create(cmd.Context(), args[0], auth.Scope(scope), ttl)
	if err != nil {
		return err
	}
	recordCLIAction(cmd.Context(), trail, audit.ActionTokenCreated, tok.ID, fmt.Sprintf("%s (%s)", tok.Name, tok.Scope))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created token %s (%s, scope %s)\n", tok.ID, tok.Name, tok.Scope)
	if tok.ExpiresAt != nil {
		fmt.Fprintf(out, "Expires: %s\n", tok.ExpiresAt.Format(time.RFC3339))
	}
	fmt.Fprintf(out, "\n  %s\n\nStore it now; it cannot be shown again.\n", plain)
	return nil
}

func runTokenList(cmd *cobra.Command, args []string) error {
	store, _, closeDB, err := openTokenStore()
	if err != nil {
		return err
	}
	defer closeDB()

	tokens, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tokens. Create one with: portfolio token create <name>")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSCOPE\tCREATED\tEXPIRES\tLAST USED")
	for _, t := range tokens {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Name, t.Scope, t.CreatedAt.Format("2006-01-02"),
			formatOptionalTime(t.ExpiresAt), formatOptionalTime(t.LastUsed))
	}
	return w.Flush()
}

func runTokenRevoke(cmd *cobra.Command, args []string) error {
	store, trail, closeDB, err := openTokenStore()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := store.Revoke(cmd.Context(), args[0]); err != nil {
		return err
	}
	recordCLIAction(cmd.Context(), trail, audit.ActionTokenRevoked, args[0], "")
	fmt.Fprintf(cmd.OutOrStdout(), "Revoked token %s\n", args[0])
	return nil
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}
