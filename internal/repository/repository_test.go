package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"chainrelay/internal/chain"
	"chainrelay/internal/db"
	"chainrelay/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var _ = Describe("Repository", func() {
	var (
		mock   sqlmock.Sqlmock
		mockDb *sql.DB
		err    error
		repo   *repository.Repository
		ctx    context.Context
		key    chain.Key
	)

	BeforeEach(func() {
		ctx = context.Background()
		key = chain.NewKey(chain.Moonbeam, chain.TypeEVM)

		mockDb, mock, err = sqlmock.New()
		Expect(err).NotTo(HaveOccurred())

		dialector := postgres.New(postgres.Config{
			Conn:       mockDb,
			DriverName: "postgres",
		})
		gormDB, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
		Expect(err).NotTo(HaveOccurred())

		repo = repository.NewRepository(db.New(gormDB))
	})

	AfterEach(func() {
		Expect(mock.ExpectationsWereMet()).To(Succeed())
		mock.ExpectClose()
		Expect(mockDb.Close()).To(Succeed())
	})

	Describe("AcquireWallet", func() {
		When("no address is requested", func() {
			BeforeEach(func() {
				mock.ExpectQuery(`SELECT \* FROM "wallets" WHERE .*chain = .* ORDER BY usage_timestamp ASC.* FOR UPDATE`).
					WillReturnRows(sqlmock.NewRows([]string{"id", "chain", "chain_type", "address", "next_nonce"}).
						AddRow(4, 1284, "evm", "0xabc", 9))
			})

			It("should lock the least recently used wallet", func() {
				w, err := repo.AcquireWallet(ctx, key, "")
				Expect(err).NotTo(HaveOccurred())
				Expect(w.ID).To(Equal(uint64(4)))
				Expect(w.NextNonce).To(Equal(uint64(9)))
			})
		})

		When("an address is requested", func() {
			BeforeEach(func() {
				mock.ExpectQuery(`SELECT \* FROM "wallets" WHERE .*LOWER\(address\) = LOWER\(.*FOR UPDATE`).
					WillReturnRows(sqlmock.NewRows([]string{"id", "address"}).AddRow(2, "0xAbC"))
			})

			It("should match it case-insensitively", func() {
				w, err := repo.AcquireWallet(ctx, key, "0xabc")
				Expect(err).NotTo(HaveOccurred())
				Expect(w.ID).To(Equal(uint64(2)))
			})
		})

		When("no wallet matches", func() {
			BeforeEach(func() {
				mock.ExpectQuery(`SELECT \* FROM "wallets"`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			})

			It("should return ErrNoWalletAvailable", func() {
				_, err := repo.AcquireWallet(ctx, key, "")
				Expect(err).To(MatchError(repository.ErrNoWalletAvailable))
			})
		})
	})

	Describe("ReserveNonce", func() {
		var wallet repository.Wallet

		BeforeEach(func() {
			wallet = repository.Wallet{ID: 4, NextNonce: 9}
		})

		When("the row still holds the expected nonce", func() {
			BeforeEach(func() {
				mock.ExpectExec(`UPDATE "wallets" SET .*"next_nonce"=next_nonce \+ 1.* WHERE \(id = .* AND next_nonce = .*\)`).
					WillReturnResult(sqlmock.NewResult(0, 1))
			})

			It("should hand out the current nonce and advance the wallet", func() {
				nonce, err := repo.ReserveNonce(ctx, &wallet)
				Expect(err).NotTo(HaveOccurred())
				Expect(nonce).To(Equal(uint64(9)))
				Expect(wallet.NextNonce).To(Equal(uint64(10)))
				Expect(wallet.UsageTimestamp).NotTo(BeZero())
			})
		})

		When("the nonce moved underneath", func() {
			BeforeEach(func() {
				mock.ExpectExec(`UPDATE "wallets" SET`).
					WillReturnResult(sqlmock.NewResult(0, 0))
			})

			It("should return ErrNonceConflict", func() {
				_, err := repo.ReserveNonce(ctx, &wallet)
				Expect(err).To(MatchError(repository.ErrNonceConflict))
				Expect(wallet.NextNonce).To(Equal(uint64(9)))
			})
		})
	})

	Describe("AdvanceWallet", func() {
		It("should update when the watermark moves forward", func() {
			mock.ExpectExec(`UPDATE "wallets" SET .*"last_parsed_block"=.*GREATEST\(last_processed_nonce, .*\).* WHERE \(id = .* AND last_parsed_block <= .*\)`).
				WillReturnResult(sqlmock.NewResult(0, 1))

			Expect(repo.AdvanceWallet(ctx, 4, 150, 7)).To(Succeed())
		})

		It("should refuse to move the watermark backwards", func() {
			mock.ExpectExec(`UPDATE "wallets" SET`).
				WillReturnResult(sqlmock.NewResult(0, 0))

			err := repo.AdvanceWallet(ctx, 4, 90, 7)
			Expect(err).To(MatchError(repository.ErrWatermarkRegression))
		})
	})

	Describe("InsertTransaction", func() {
		It("should reject a half-set reference without touching the database", func() {
			err := repo.InsertTransaction(ctx, &repository.Transaction{ReferenceTable: "orders"})
			Expect(err).To(MatchError(repository.ErrInvalidReference))
		})

		It("should normalize the hash and default the status", func() {
			mock.ExpectQuery(`INSERT INTO "transactions" .* RETURNING "id"`).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

			tx := repository.Transaction{
				Chain:           chain.Moonbeam,
				ChainType:       chain.TypeEVM,
				Address:         "0xabc",
				Nonce:           9,
				TransactionHash: "ABCDEF",
			}
			Expect(repo.InsertTransaction(ctx, &tx)).To(Succeed())
			Expect(tx.ID).To(Equal(uint64(7)))
			Expect(tx.TransactionHash).To(Equal("0xabcdef"))
			Expect(tx.TransactionStatus).To(Equal(chain.StatusPending))
		})
	})

	Describe("TransitionStatus", func() {
		var q repository.TransitionQuery

		BeforeEach(func() {
			q = repository.TransitionQuery{Key: key, Address: "0xabc", Hashes: []string{"0x01", "0X02"}}
		})

		It("should reject a non-terminal target", func() {
			_, err := repo.TransitionStatus(ctx, q, chain.StatusPending, "")
			Expect(err).To(MatchError(repository.ErrInvalidTransition))
		})

		It("should not query for an empty hash set", func() {
			q.Hashes = []string{"", " "}
			rows, err := repo.TransitionStatus(ctx, q, chain.StatusConfirmed, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(BeEmpty())
		})

		When("pending rows match", func() {
			BeforeEach(func() {
				mock.ExpectQuery(`SELECT \* FROM "transactions" WHERE .*transaction_hash IN .* AND transaction_status = .* FOR UPDATE`).
					WillReturnRows(sqlmock.NewRows([]string{"id", "transaction_hash", "transaction_status", "reference_table", "reference_id"}).
						AddRow(11, "0x01", "PENDING", "orders", "42"))
				mock.ExpectExec(`UPDATE "transactions" SET .*"transaction_status"=.* WHERE \(id IN .* AND transaction_status = .*\)`).
					WillReturnResult(sqlmock.NewResult(0, 1))
			})

			It("should return only the rows it changed", func() {
				rows, err := repo.TransitionStatus(ctx, q, chain.StatusFailed, "reverted")
				Expect(err).NotTo(HaveOccurred())
				Expect(rows).To(HaveLen(1))
				Expect(rows[0].ID).To(Equal(uint64(11)))
				Expect(rows[0].TransactionStatus).To(Equal(chain.StatusFailed))
				Expect(rows[0].LastError).To(Equal("reverted"))
				Expect(rows[0].HasReference()).To(BeTrue())
			})
		})

		When("every row is already terminal", func() {
			BeforeEach(func() {
				mock.ExpectQuery(`SELECT \* FROM "transactions"`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			})

			It("should be a no-op", func() {
				rows, err := repo.TransitionStatus(ctx, q, chain.StatusConfirmed, "")
				Expect(err).NotTo(HaveOccurred())
				Expect(rows).To(BeEmpty())
			})
		})
	})

	Describe("Atomic", func() {
		It("should commit when fn succeeds", func() {
			mock.ExpectBegin()
			mock.ExpectExec(`UPDATE "transactions" SET .*"broadcast_at"=`).
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectCommit()

			err := repo.Atomic(ctx, func(s repository.Store) error {
				return s.MarkBroadcast(ctx, 11, time.Now())
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should roll back when fn fails", func() {
			fakeErr := errors.New("fake error")
			mock.ExpectBegin()
			mock.ExpectRollback()

			err := repo.Atomic(ctx, func(s repository.Store) error {
				return fakeErr
			})
			Expect(err).To(MatchError(fakeErr))
		})
	})

	Describe("GetEndpoint", func() {
		It("should map a missing row to ErrEndpointNotFound", func() {
			mock.ExpectQuery(`SELECT \* FROM "endpoints" WHERE \(chain = .* AND chain_type = .*\)`).
				WillReturnRows(sqlmock.NewRows([]string{"id"}))

			_, err := repo.GetEndpoint(ctx, key)
			Expect(err).To(MatchError(repository.ErrEndpointNotFound))
		})
	})

	Describe("InsertEvents", func() {
		It("should keep an event already written under the same id", func() {
			mock.ExpectExec(`INSERT INTO "events" .* ON CONFLICT DO NOTHING`).
				WillReturnResult(sqlmock.NewResult(0, 0))

			err := repo.InsertEvents(ctx, []repository.Event{{ID: "e-1", Kind: "credits.refund", Payload: []byte(`{}`)}})
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("MarkEventsDispatched", func() {
		It("should skip an empty id list", func() {
			Expect(repo.MarkEventsDispatched(ctx, nil, time.Now())).To(Succeed())
		})
	})
})
