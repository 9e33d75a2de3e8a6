package db_test

import (
	"context"
	"database/sql"

	"chainrelay/internal/db"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Test struct {
	ID       uint `gorm:"primaryKey"`
	Username string
}

var _ = Describe("Database", func() {
	var (
		mock   sqlmock.Sqlmock
		mockDb *sql.DB
		err    error
		testDB *db.GormDB
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		mockDb, mock, err = sqlmock.New()
		Expect(err).NotTo(HaveOccurred())

		dialector := postgres.New(postgres.Config{
			Conn:       mockDb,
			DriverName: "postgres",
		})

		gormDB, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
		Expect(err).NotTo(HaveOccurred())

		testDB = db.New(gormDB)
	})

	AfterEach(func() {
		mock.ExpectClose()
		Expect(mockDb.Close()).To(Succeed())
	})

	Describe("Seed", func() {
		When("records are given", func() {
			BeforeEach(func() {
				mock.ExpectQuery(`^INSERT INTO "tests" .* ON CONFLICT DO NOTHING RETURNING "id"$`).
					WithArgs("Alice", 1, "Bob", 2).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
			})

			It("should insert them skipping conflicts", func() {
				err := testDB.Seed(ctx, &[]Test{
					{ID: 1, Username: "Alice"},
					{ID: 2, Username: "Bob"},
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(mock.ExpectationsWereMet()).To(Succeed())
			})
		})

		When("the slice is empty", func() {
			It("should not touch the database", func() {
				Expect(testDB.Seed(ctx, &[]Test{})).To(Succeed())
				Expect(mock.ExpectationsWereMet()).To(Succeed())
			})
		})

		When("records are not a slice pointer", func() {
			It("should return an error", func() {
				err := testDB.Seed(ctx, Test{ID: 1})
				Expect(err).To(MatchError(ContainSubstring("records type must be pointer to a slice")))
			})
		})
	})
})
