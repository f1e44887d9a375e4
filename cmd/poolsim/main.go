// Command poolsim drives the pool core end to end against an in-memory
// token ledger, for local experimentation and scripted integration tests.
// It is not a client for a deployed program — there is no network, no
// wallet, no transaction signing; every subcommand other than demo
// exercises the processor directly against state persisted as JSON under
// the configured data directory, and prints a one-line summary of the
// result (inspect prints the pool's fields).
//
// Accounts are named by short labels ("alice", "treasury-pool") instead
// of raw 32-byte identities: each label is hashed into a deterministic
// Address, so repeated invocations of the same script reconstruct the
// same accounts without a keypair or wallet file.
package main

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ternarypool/core"
	"ternarypool/pkg/config"
	"ternarypool/pkg/metrics"
)

var (
	cfgFile string
	cfg     config.Config
	logger  = log.StandardLogger()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "poolsim",
		Short: "Drive the three-asset pool core against a persisted in-memory ledger",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = loaded
			level, err := log.ParseLevel(cfg.Log.Level)
			if err != nil {
				return err
			}
			logger.SetLevel(level)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a poolsim config file")
	root.AddCommand(
		newDemoCmd(),
		newInitCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newSwapCmd(),
		newFreezeCmd(),
		newThawCmd(),
		newEarnCmd(),
		newTransferOwnershipCmd(),
		newInspectCmd(),
	)
	return root
}

//---------------------------------------------------------------------
// Deterministic identities and on-disk state
//---------------------------------------------------------------------

// seedAddress derives a deterministic Address from a label, so repeated
// runs of the same script produce the same identities without a keypair.
func seedAddress(label string) core.Address {
	sum := sha256.Sum256([]byte("poolsim-seed:" + label))
	var a core.Address
	copy(a[:], sum[:])
	return a
}

// poolAccounts are every address derived from a pool label: the pool id
// itself plus its fixed mints, treasuries, and vault.
type poolAccounts struct {
	programID                     core.Address
	poolID                        core.Address
	treasurer                     core.Address
	mintLpt, vault                core.Address
	mintS, mintA, mintB           core.Address
	treasuryS, treasuryA, treasuryB core.Address
}

func derivePoolAccounts(poolLabel string) poolAccounts {
	programID := seedAddress("program")
	poolID := seedAddress("pool:" + poolLabel)
	return poolAccounts{
		programID: programID,
		poolID:    poolID,
		treasurer: core.DeriveAuthority(programID, poolID),
		mintLpt:   seedAddress("pool:" + poolLabel + ":mint-lpt"),
		vault:     seedAddress("pool:" + poolLabel + ":vault"),
		mintS:     seedAddress("pool:" + poolLabel + ":mint-s"),
		mintA:     seedAddress("pool:" + poolLabel + ":mint-a"),
		mintB:     seedAddress("pool:" + poolLabel + ":mint-b"),
		treasuryS: seedAddress("pool:" + poolLabel + ":treasury-s"),
		treasuryA: seedAddress("pool:" + poolLabel + ":treasury-a"),
		treasuryB: seedAddress("pool:" + poolLabel + ":treasury-b"),
	}
}

// ownerAccount derives the per-(owner,pool,asset) token account an owner
// label holds for one of a pool's four mints ("s", "a", "b", "lpt").
func ownerAccount(ownerLabel, poolLabel, asset string) core.Address {
	return seedAddress("account:" + ownerLabel + ":" + poolLabel + ":" + asset)
}

// diskState is the full persisted harness state: every mock-ledger
// account and mint, plus every pool the processor has initialized.
type diskState struct {
	Accounts map[core.Address]core.AccountSnapshot `json:"accounts"`
	Mints    map[core.Address]core.MintSnapshot    `json:"mints"`
	Pools    map[core.Address]*core.Pool           `json:"pools"`
}

func statePath() string {
	return filepath.Join(cfg.DataDir, "state.json")
}

func loadHarness() (*core.Processor, *core.MockTokenAPI, error) {
	programID := seedAddress("program")
	token := core.NewMockTokenAPI()
	proc := core.NewProcessor(programID, token, logger)

	data, err := os.ReadFile(statePath())
	if os.IsNotExist(err) {
		return proc, token, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read state: %w", err)
	}
	var st diskState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, nil, fmt.Errorf("decode state: %w", err)
	}
	token.Restore(st.Accounts, st.Mints)
	proc.Restore(st.Pools)
	return proc, token, nil
}

func saveHarness(proc *core.Processor, token *core.MockTokenAPI) error {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	accounts, mints := token.Snapshot()
	st := diskState{Accounts: accounts, Mints: mints, Pools: proc.Snapshot()}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return os.WriteFile(statePath(), data, 0o644)
}

// ensureFundedAccount creates owner's account for mint, seeded with
// balance, the first time it's seen; a harness has no separate "mint
// tokens to a wallet" step, so account creation and funding happen
// together on first use. An already-created account is topped up only
// if its current balance would otherwise be insufficient.
func ensureFundedAccount(token *core.MockTokenAPI, account, owner, mint core.Address, balance uint64) {
	if !token.HasAccount(account) {
		token.Seed(account, owner, mint, balance)
		return
	}
	if token.Balance(account) < balance {
		token.Seed(account, owner, mint, balance)
	}
}

//---------------------------------------------------------------------
// demo
//---------------------------------------------------------------------

func newDemoCmd() *cobra.Command {
	var reserveS, reserveA, reserveB uint64
	var swapAmount, swapLimit uint64

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Initialize a throwaway pool and run one swap against it, printing the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			pa := derivePoolAccounts("demo")
			payer := seedAddress("payer:demo")
			owner := seedAddress("owner:demo")

			srcS, srcA, srcB := ownerAccount("demo", "demo", "s"), ownerAccount("demo", "demo", "a"), ownerAccount("demo", "demo", "b")
			// lptAcc is deliberately not seeded: InitializePool creates it
			// itself via InitAccount, and seeding it first would collide.
			lptAcc := ownerAccount("demo", "demo", "lpt")

			token := core.NewMockTokenAPI()
			token.Seed(srcS, payer, pa.mintS, reserveS*2)
			token.Seed(srcA, payer, pa.mintA, reserveA*2)
			token.Seed(srcB, payer, pa.mintB, reserveB*2)

			proc := core.NewProcessor(pa.programID, token, logger)
			proof := core.XorAddress(pa.programID, pa.poolID, pa.treasurer)

			err := proc.InitializePool(reserveS, reserveA, reserveB, core.InitializePoolAccounts{
				Payer:            core.AccountInfo{Address: payer, IsSigner: true},
				Owner:            owner,
				PoolID:           pa.poolID,
				PoolSigner:       true,
				LptAcc:           lptAcc,
				MintLpt:          pa.mintLpt,
				Vault:            pa.vault,
				VaultSigner:      true,
				Proof:            proof,
				SrcS:             srcS,
				MintS:            pa.mintS,
				TreasuryS:        pa.treasuryS,
				SrcA:             srcA,
				MintA:            pa.mintA,
				TreasuryA:        pa.treasuryA,
				SrcB:             srcB,
				MintB:            pa.mintB,
				TreasuryB:        pa.treasuryB,
				Treasurer:        pa.treasurer,
				PoolAccountOwner: pa.programID,
			})
			if err != nil {
				return fmt.Errorf("initialize pool: %w", err)
			}

			err = proc.Swap(swapAmount, swapLimit, core.SwapAccounts{
				Payer:            core.AccountInfo{Address: payer, IsSigner: true},
				PoolID:           pa.poolID,
				PoolAccountOwner: pa.programID,
				Vault:            pa.vault,
				Src:              srcA,
				TreasuryBid:      pa.treasuryA,
				Dst:              srcB,
				TreasuryAsk:      pa.treasuryB,
				TreasurySen:      pa.treasuryS,
				Treasurer:        pa.treasurer,
			})
			if err != nil {
				return fmt.Errorf("swap: %w", err)
			}

			pool, _ := proc.Pool(pa.poolID)
			fmt.Printf("pool state: %s\n", pool.State)
			fmt.Printf("reserves: s=%d a=%d b=%d\n", pool.ReserveS, pool.ReserveA, pool.ReserveB)
			fmt.Printf("payer asset-B balance: %d\n", token.Balance(srcB))
			metrics.ObserveInstruction("demo", "ok")
			return nil
		},
	}

	cmd.Flags().Uint64Var(&reserveS, "reserve-s", 1_000_000_000, "initial S reserve")
	cmd.Flags().Uint64Var(&reserveA, "reserve-a", 1_000_000_000, "initial A reserve")
	cmd.Flags().Uint64Var(&reserveB, "reserve-b", 1_000_000_000, "initial B reserve")
	cmd.Flags().Uint64Var(&swapAmount, "amount", 1_000_000, "swap input amount")
	cmd.Flags().Uint64Var(&swapLimit, "limit", 0, "minimum acceptable output")
	return cmd
}

//---------------------------------------------------------------------
// init
//---------------------------------------------------------------------

func newInitCmd() *cobra.Command {
	var pool, owner, payer string
	var reserveS, reserveA, reserveB uint64

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create and initialize a pool, funding the payer's source accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			proc, token, err := loadHarness()
			if err != nil {
				return err
			}
			pa := derivePoolAccounts(pool)
			ownerAddr := seedAddress("owner:" + owner)
			payerAddr := seedAddress("payer:" + payer)

			srcS, srcA, srcB := ownerAccount(payer, pool, "s"), ownerAccount(payer, pool, "a"), ownerAccount(payer, pool, "b")
			// lptAcc is deliberately not seeded: InitializePool creates it
			// itself via InitAccount, and seeding it first would collide.
			lptAcc := ownerAccount(payer, pool, "lpt")
			token.Seed(srcS, payerAddr, pa.mintS, reserveS*2)
			token.Seed(srcA, payerAddr, pa.mintA, reserveA*2)
			token.Seed(srcB, payerAddr, pa.mintB, reserveB*2)

			proof := core.XorAddress(pa.programID, pa.poolID, pa.treasurer)
			err = proc.InitializePool(reserveS, reserveA, reserveB, core.InitializePoolAccounts{
				Payer:            core.AccountInfo{Address: payerAddr, IsSigner: true},
				Owner:            ownerAddr,
				PoolID:           pa.poolID,
				PoolSigner:       true,
				LptAcc:           lptAcc,
				MintLpt:          pa.mintLpt,
				Vault:            pa.vault,
				VaultSigner:      true,
				Proof:            proof,
				SrcS:             srcS,
				MintS:            pa.mintS,
				TreasuryS:        pa.treasuryS,
				SrcA:             srcA,
				MintA:            pa.mintA,
				TreasuryA:        pa.treasuryA,
				SrcB:             srcB,
				MintB:            pa.mintB,
				TreasuryB:        pa.treasuryB,
				Treasurer:        pa.treasurer,
				PoolAccountOwner: pa.programID,
			})
			if err != nil {
				return err
			}
			if err := saveHarness(proc, token); err != nil {
				return err
			}
			fmt.Printf("pool %q initialized with reserves s=%d a=%d b=%d\n", pool, reserveS, reserveA, reserveB)
			return nil
		},
	}
	cmd.Flags().StringVar(&pool, "pool", "", "pool label (required)")
	cmd.Flags().StringVar(&owner, "owner", "", "pool owner label (required)")
	cmd.Flags().StringVar(&payer, "payer", "", "payer label (required)")
	cmd.Flags().Uint64Var(&reserveS, "reserve-s", 0, "initial S reserve")
	cmd.Flags().Uint64Var(&reserveA, "reserve-a", 0, "initial A reserve")
	cmd.Flags().Uint64Var(&reserveB, "reserve-b", 0, "initial B reserve")
	cmd.MarkFlagRequired("pool")
	cmd.MarkFlagRequired("owner")
	cmd.MarkFlagRequired("payer")
	return cmd
}

//---------------------------------------------------------------------
// add
//---------------------------------------------------------------------

func newAddCmd() *cobra.Command {
	var pool, owner string
	var deltaS, deltaA, deltaB uint64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add three-asset liquidity to a pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			proc, token, err := loadHarness()
			if err != nil {
				return err
			}
			pa := derivePoolAccounts(pool)
			ownerAddr := seedAddress("owner:" + owner)
			srcS, srcA, srcB := ownerAccount(owner, pool, "s"), ownerAccount(owner, pool, "a"), ownerAccount(owner, pool, "b")
			lptAcc := ownerAccount(owner, pool, "lpt")
			ensureFundedAccount(token, srcS, ownerAddr, pa.mintS, deltaS*2)
			ensureFundedAccount(token, srcA, ownerAddr, pa.mintA, deltaA*2)
			ensureFundedAccount(token, srcB, ownerAddr, pa.mintB, deltaB*2)
			ensureFundedAccount(token, lptAcc, ownerAddr, pa.mintLpt, 0)

			err = proc.AddLiquidity(deltaS, deltaA, deltaB, core.AddLiquidityAccounts{
				Owner:            core.AccountInfo{Address: ownerAddr, IsSigner: true},
				PoolID:           pa.poolID,
				PoolAccountOwner: pa.programID,
				LptAcc:           lptAcc,
				MintLpt:          pa.mintLpt,
				SrcS:             srcS,
				TreasuryS:        pa.treasuryS,
				SrcA:             srcA,
				TreasuryA:        pa.treasuryA,
				SrcB:             srcB,
				TreasuryB:        pa.treasuryB,
				Treasurer:        pa.treasurer,
			})
			if err != nil {
				return err
			}
			if err := saveHarness(proc, token); err != nil {
				return err
			}
			fmt.Printf("added liquidity to %q: lpt balance now %d\n", pool, token.Balance(lptAcc))
			return nil
		},
	}
	cmd.Flags().StringVar(&pool, "pool", "", "pool label (required)")
	cmd.Flags().StringVar(&owner, "owner", "", "liquidity provider label (required)")
	cmd.Flags().Uint64Var(&deltaS, "delta-s", 0, "S deposit amount")
	cmd.Flags().Uint64Var(&deltaA, "delta-a", 0, "A deposit amount")
	cmd.Flags().Uint64Var(&deltaB, "delta-b", 0, "B deposit amount")
	cmd.MarkFlagRequired("pool")
	cmd.MarkFlagRequired("owner")
	return cmd
}

//---------------------------------------------------------------------
// remove
//---------------------------------------------------------------------

func newRemoveCmd() *cobra.Command {
	var pool, owner string
	var lpt uint64

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Burn LP shares and withdraw a pro-rata share of all three reserves",
		RunE: func(cmd *cobra.Command, args []string) error {
			proc, token, err := loadHarness()
			if err != nil {
				return err
			}
			pa := derivePoolAccounts(pool)
			ownerAddr := seedAddress("owner:" + owner)
			dstS, dstA, dstB := ownerAccount(owner, pool, "s"), ownerAccount(owner, pool, "a"), ownerAccount(owner, pool, "b")
			lptAcc := ownerAccount(owner, pool, "lpt")
			ensureFundedAccount(token, dstS, ownerAddr, pa.mintS, 0)
			ensureFundedAccount(token, dstA, ownerAddr, pa.mintA, 0)
			ensureFundedAccount(token, dstB, ownerAddr, pa.mintB, 0)

			err = proc.RemoveLiquidity(lpt, core.RemoveLiquidityAccounts{
				Owner:            core.AccountInfo{Address: ownerAddr, IsSigner: true},
				PoolID:           pa.poolID,
				PoolAccountOwner: pa.programID,
				LptAcc:           lptAcc,
				MintLpt:          pa.mintLpt,
				DstS:             dstS,
				TreasuryS:        pa.treasuryS,
				DstA:             dstA,
				TreasuryA:        pa.treasuryA,
				DstB:             dstB,
				TreasuryB:        pa.treasuryB,
				Treasurer:        pa.treasurer,
			})
			if err != nil {
				return err
			}
			if err := saveHarness(proc, token); err != nil {
				return err
			}
			fmt.Printf("removed %d lpt from %q: s=%d a=%d b=%d\n", lpt, pool,
				token.Balance(dstS), token.Balance(dstA), token.Balance(dstB))
			return nil
		},
	}
	cmd.Flags().StringVar(&pool, "pool", "", "pool label (required)")
	cmd.Flags().StringVar(&owner, "owner", "", "LP share owner label (required)")
	cmd.Flags().Uint64Var(&lpt, "lpt", 0, "LP shares to burn")
	cmd.MarkFlagRequired("pool")
	cmd.MarkFlagRequired("owner")
	return cmd
}

//---------------------------------------------------------------------
// swap
//---------------------------------------------------------------------

func newSwapCmd() *cobra.Command {
	var pool, payer, bid, ask string
	var amount, limit uint64

	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Swap one asset for another against a pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			proc, token, err := loadHarness()
			if err != nil {
				return err
			}
			pa := derivePoolAccounts(pool)
			payerAddr := seedAddress("payer:" + payer)

			bidTreasury, bidMint, err := assetTreasuryAndMint(pa, bid)
			if err != nil {
				return err
			}
			askTreasury, askMint, err := assetTreasuryAndMint(pa, ask)
			if err != nil {
				return err
			}
			src := ownerAccount(payer, pool, bid)
			dst := ownerAccount(payer, pool, ask)
			ensureFundedAccount(token, src, payerAddr, bidMint, amount*2)
			ensureFundedAccount(token, dst, payerAddr, askMint, 0)
			dstBefore := token.Balance(dst)

			err = proc.Swap(amount, limit, core.SwapAccounts{
				Payer:            core.AccountInfo{Address: payerAddr, IsSigner: true},
				PoolID:           pa.poolID,
				PoolAccountOwner: pa.programID,
				Vault:            pa.vault,
				Src:              src,
				TreasuryBid:      bidTreasury,
				Dst:              dst,
				TreasuryAsk:      askTreasury,
				TreasurySen:      pa.treasuryS,
				Treasurer:        pa.treasurer,
			})
			if err != nil {
				return err
			}
			if err := saveHarness(proc, token); err != nil {
				return err
			}
			fmt.Printf("swapped %d %s for %s on %q: received %d\n", amount, bid, ask, pool, token.Balance(dst)-dstBefore)
			return nil
		},
	}
	cmd.Flags().StringVar(&pool, "pool", "", "pool label (required)")
	cmd.Flags().StringVar(&payer, "payer", "", "payer label (required)")
	cmd.Flags().StringVar(&bid, "bid", "", "bid asset: s, a, or b (required)")
	cmd.Flags().StringVar(&ask, "ask", "", "ask asset: s, a, or b (required)")
	cmd.Flags().Uint64Var(&amount, "amount", 0, "swap input amount")
	cmd.Flags().Uint64Var(&limit, "limit", 0, "minimum acceptable output")
	cmd.MarkFlagRequired("pool")
	cmd.MarkFlagRequired("payer")
	cmd.MarkFlagRequired("bid")
	cmd.MarkFlagRequired("ask")
	return cmd
}

func assetTreasuryAndMint(pa poolAccounts, asset string) (treasury, mint core.Address, err error) {
	switch asset {
	case "s":
		return pa.treasuryS, pa.mintS, nil
	case "a":
		return pa.treasuryA, pa.mintA, nil
	case "b":
		return pa.treasuryB, pa.mintB, nil
	default:
		return core.Address{}, core.Address{}, fmt.Errorf("unknown asset %q: want s, a, or b", asset)
	}
}

//---------------------------------------------------------------------
// freeze / thaw
//---------------------------------------------------------------------

func newFreezeCmd() *cobra.Command {
	var pool, owner string
	cmd := &cobra.Command{
		Use:   "freeze",
		Short: "Freeze a pool, rejecting further Swap and RemoveLiquidity calls",
		RunE:  freezeOrThaw(&pool, &owner, true),
	}
	cmd.Flags().StringVar(&pool, "pool", "", "pool label (required)")
	cmd.Flags().StringVar(&owner, "owner", "", "pool owner label (required)")
	cmd.MarkFlagRequired("pool")
	cmd.MarkFlagRequired("owner")
	return cmd
}

func newThawCmd() *cobra.Command {
	var pool, owner string
	cmd := &cobra.Command{
		Use:   "thaw",
		Short: "Thaw a previously frozen pool",
		RunE:  freezeOrThaw(&pool, &owner, false),
	}
	cmd.Flags().StringVar(&pool, "pool", "", "pool label (required)")
	cmd.Flags().StringVar(&owner, "owner", "", "pool owner label (required)")
	cmd.MarkFlagRequired("pool")
	cmd.MarkFlagRequired("owner")
	return cmd
}

func freezeOrThaw(pool, owner *string, freeze bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		proc, token, err := loadHarness()
		if err != nil {
			return err
		}
		pa := derivePoolAccounts(*pool)
		acc := core.FreezeAccounts{
			Owner:            core.AccountInfo{Address: seedAddress("owner:" + *owner), IsSigner: true},
			PoolID:           pa.poolID,
			PoolAccountOwner: pa.programID,
		}
		if freeze {
			err = proc.FreezePool(acc)
		} else {
			err = proc.ThawPool(acc)
		}
		if err != nil {
			return err
		}
		if err := saveHarness(proc, token); err != nil {
			return err
		}
		verb := "thawed"
		if freeze {
			verb = "frozen"
		}
		fmt.Printf("pool %q %s\n", *pool, verb)
		return nil
	}
}

//---------------------------------------------------------------------
// earn
//---------------------------------------------------------------------

func newEarnCmd() *cobra.Command {
	var pool, owner string
	var amount uint64

	cmd := &cobra.Command{
		Use:   "earn",
		Short: "Withdraw accumulated earnings from a pool's vault to its owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			proc, token, err := loadHarness()
			if err != nil {
				return err
			}
			pa := derivePoolAccounts(pool)
			ownerAddr := seedAddress("owner:" + owner)
			dst := ownerAccount(owner, pool, "s")
			ensureFundedAccount(token, dst, ownerAddr, pa.mintS, 0)

			err = proc.Earn(amount, core.EarnAccounts{
				Owner:            core.AccountInfo{Address: ownerAddr, IsSigner: true},
				PoolID:           pa.poolID,
				PoolAccountOwner: pa.programID,
				Vault:            pa.vault,
				Dst:              dst,
				Treasurer:        pa.treasurer,
			})
			if err != nil {
				return err
			}
			if err := saveHarness(proc, token); err != nil {
				return err
			}
			fmt.Printf("withdrew %d earnings from %q: owner S balance now %d\n", amount, pool, token.Balance(dst))
			return nil
		},
	}
	cmd.Flags().StringVar(&pool, "pool", "", "pool label (required)")
	cmd.Flags().StringVar(&owner, "owner", "", "pool owner label (required)")
	cmd.Flags().Uint64Var(&amount, "amount", 0, "amount to withdraw from the vault")
	cmd.MarkFlagRequired("pool")
	cmd.MarkFlagRequired("owner")
	return cmd
}

//---------------------------------------------------------------------
// transfer-ownership
//---------------------------------------------------------------------

func newTransferOwnershipCmd() *cobra.Command {
	var pool, owner, newOwner string

	cmd := &cobra.Command{
		Use:   "transfer-ownership",
		Short: "Transfer a pool's ownership to a new owner label",
		RunE: func(cmd *cobra.Command, args []string) error {
			proc, token, err := loadHarness()
			if err != nil {
				return err
			}
			pa := derivePoolAccounts(pool)
			err = proc.TransferPoolOwnership(core.TransferOwnershipAccounts{
				Owner:            core.AccountInfo{Address: seedAddress("owner:" + owner), IsSigner: true},
				PoolID:           pa.poolID,
				PoolAccountOwner: pa.programID,
				NewOwner:         seedAddress("owner:" + newOwner),
			})
			if err != nil {
				return err
			}
			if err := saveHarness(proc, token); err != nil {
				return err
			}
			fmt.Printf("pool %q ownership transferred from %q to %q\n", pool, owner, newOwner)
			return nil
		},
	}
	cmd.Flags().StringVar(&pool, "pool", "", "pool label (required)")
	cmd.Flags().StringVar(&owner, "owner", "", "current owner label (required)")
	cmd.Flags().StringVar(&newOwner, "new-owner", "", "new owner label (required)")
	cmd.MarkFlagRequired("pool")
	cmd.MarkFlagRequired("owner")
	cmd.MarkFlagRequired("new-owner")
	return cmd
}

//---------------------------------------------------------------------
// inspect
//---------------------------------------------------------------------

func newInspectCmd() *cobra.Command {
	var pool string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print a pool's current packed state",
		RunE: func(cmd *cobra.Command, args []string) error {
			proc, _, err := loadHarness()
			if err != nil {
				return err
			}
			pa := derivePoolAccounts(pool)
			p, ok := proc.Pool(pa.poolID)
			if !ok {
				return fmt.Errorf("pool %q has not been initialized", pool)
			}
			fmt.Printf("pool:      %s\n", pa.poolID)
			fmt.Printf("owner:     %s\n", p.Owner)
			fmt.Printf("state:     %s\n", p.State)
			fmt.Printf("treasurer: %s\n", pa.treasurer)
			fmt.Printf("reserves:  s=%d a=%d b=%d\n", p.ReserveS, p.ReserveA, p.ReserveB)
			return nil
		},
	}
	cmd.Flags().StringVar(&pool, "pool", "", "pool label (required)")
	cmd.MarkFlagRequired("pool")
	return cmd
}
