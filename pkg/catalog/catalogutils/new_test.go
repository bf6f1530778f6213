package catalogutils_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/marquee/pkg/catalog"
	"github.com/papercomputeco/marquee/pkg/catalog/catalogutils"
	"github.com/papercomputeco/marquee/pkg/logger"
	testutils "github.com/papercomputeco/marquee/pkg/utils/test"
)

var _ = Describe("LoadCatalog", func() {
	var (
		ctx context.Context
		dir string
	)

	BeforeEach(func() {
		ctx = context.Background()
		dir = GinkgoT().TempDir()
	})

	It("loads csv by default", func() {
		path := filepath.Join(dir, "movies.csv")
		Expect(os.WriteFile(path, []byte(testutils.CatalogCSV), 0o600)).To(Succeed())

		c, err := catalogutils.LoadCatalog(ctx, &catalogutils.LoadCatalogOpts{Path: path, Logger: logger.Nop()})
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Len()).To(Equal(7))
	})

	It("loads what was ingested into sqlite", func() {
		opts := &catalogutils.LoadCatalogOpts{
			ProviderType: catalogutils.ProviderSQLite,
			DSN:          filepath.Join(dir, "catalog.db"),
			Logger:       logger.Nop(),
		}

		store, err := catalogutils.OpenStore(ctx, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(store.Replace(ctx, testutils.NewTestCatalog())).To(Succeed())
		Expect(store.Close()).To(Succeed())

		c, err := catalogutils.LoadCatalog(ctx, opts)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Movies()).To(Equal(testutils.NewTestCatalog().Movies()))
	})

	It("requires a dsn for sql providers", func() {
		_, err := catalogutils.LoadCatalog(ctx, &catalogutils.LoadCatalogOpts{ProviderType: catalogutils.ProviderSQLite})
		Expect(err).To(MatchError(catalog.ErrConfiguration))
	})

	It("rejects unknown providers", func() {
		_, err := catalogutils.LoadCatalog(ctx, &catalogutils.LoadCatalogOpts{ProviderType: "parquet"})
		Expect(err).To(MatchError(catalog.ErrConfiguration))
		Expect(err.Error()).To(ContainSubstring("parquet"))
	})

	It("reports a missing csv as a configuration error", func() {
		_, err := catalogutils.LoadCatalog(ctx, &catalogutils.LoadCatalogOpts{Path: filepath.Join(dir, "nope.csv")})
		Expect(err).To(MatchError(catalog.ErrConfiguration))
	})
})
