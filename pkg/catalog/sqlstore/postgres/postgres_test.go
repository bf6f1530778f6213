package postgres_test

import (
	"context"
	"fmt"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/marquee/pkg/catalog/sqlstore"
	"github.com/papercomputeco/marquee/pkg/catalog/sqlstore/postgres"
	testutils "github.com/papercomputeco/marquee/pkg/utils/test"
)

// connStr returns the PostgreSQL connection string from environment or skips the test.
func connStr() string {
	dsn := os.Getenv("MARQUEE_TEST_POSTGRES_DSN")
	if dsn == "" {
		Skip("MARQUEE_TEST_POSTGRES_DSN not set, skipping PostgreSQL tests")
	}
	return dsn
}

var _ = Describe("PostgreSQL catalog store", func() {
	var (
		store *sqlstore.Store
		ctx   context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		dsn := connStr()

		var err error
		store, err = postgres.NewStore(ctx, dsn, "marquee_test_movies")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if store != nil {
			store.Close()
		}
	})

	It("returns an error for an unreachable database", func() {
		_, err := postgres.NewStore(ctx, "host=invalid port=9999 user=bad dbname=bad sslmode=disable connect_timeout=1", "")
		Expect(err).To(HaveOccurred())
		fmt.Fprintf(GinkgoWriter, "expected error: %v\n", err)
	})

	It("round trips a catalog in order", func() {
		want := testutils.NewTestCatalog()
		Expect(store.Replace(ctx, want)).To(Succeed())

		got, err := store.Load(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Movies()).To(Equal(want.Movies()))

		n, err := store.Count(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(want.Len()))
	})
})
