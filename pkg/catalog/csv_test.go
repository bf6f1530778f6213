package catalog_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/marquee/pkg/catalog"
	testutils "github.com/papercomputeco/marquee/pkg/utils/test"
)

var _ = Describe("ReadCSV", func() {
	It("loads every row in file order", func() {
		c, err := catalog.ReadCSV(strings.NewReader(testutils.CatalogCSV))
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Len()).To(Equal(7))
		Expect(c.At(0).PrimaryTitle).To(Equal("Inception"))
		Expect(c.At(6).PrimaryTitle).To(Equal("Amelie"))
	})

	It("parses typed fields", func() {
		c, err := catalog.ReadCSV(strings.NewReader(testutils.CatalogCSV))
		Expect(err).NotTo(HaveOccurred())

		m := c.At(2)
		Expect(m.Genres).To(Equal("Adventure,Drama,Sci-Fi"))
		Expect(m.Directors).To(Equal("Christopher Nolan"))
		Expect(m.Writers).To(Equal("Jonathan Nolan"))
		Expect(m.AverageRating).To(BeNumerically("~", 8.7, 1e-9))
		Expect(m.StartYear).To(Equal(2014))
		Expect(m.RuntimeMinutes).To(Equal(169))
	})

	It("replaces missing text fields with Unknown", func() {
		c, err := catalog.ReadCSV(strings.NewReader(testutils.CatalogCSV))
		Expect(err).NotTo(HaveOccurred())

		m := c.At(6)
		Expect(m.Directors).To(Equal(catalog.Unknown))
		Expect(m.Writers).To(Equal(catalog.Unknown))
		Expect(m.Combined).To(Equal("Comedy,Romance Unknown Unknown"))
	})

	It("treats NA markers as missing", func() {
		data := "primaryTitle,genres,directors,writers,averageRating,startYear,runtimeMinutes\n" +
			"Ghost,NaN,NULL,N/A,NA,,\n"
		c, err := catalog.ReadCSV(strings.NewReader(data))
		Expect(err).NotTo(HaveOccurred())

		m := c.At(0)
		Expect(m.Combined).To(Equal("Unknown Unknown Unknown"))
		Expect(m.AverageRating).To(BeZero())
		Expect(m.StartYear).To(BeZero())
		Expect(m.RuntimeMinutes).To(BeZero())
	})

	It("joins the combined field as genres, directors, writers", func() {
		c, err := catalog.ReadCSV(strings.NewReader(testutils.CatalogCSV))
		Expect(err).NotTo(HaveOccurred())
		Expect(c.At(0).Combined).To(Equal("Action,Adventure,Sci-Fi Christopher Nolan Christopher Nolan"))
	})

	It("never produces an empty combined field", func() {
		data := "primaryTitle,genres,directors,writers,averageRating,startYear,runtimeMinutes\n" +
			"A,,,,,,\nB,  ,\t,,,,\n"
		c, err := catalog.ReadCSV(strings.NewReader(data))
		Expect(err).NotTo(HaveOccurred())
		for _, m := range c.Movies() {
			Expect(strings.TrimSpace(m.Combined)).NotTo(BeEmpty())
		}
	})

	It("accepts columns in any order and ignores extras", func() {
		data := "tconst,runtimeMinutes,writers,primaryTitle,startYear,genres,averageRating,directors\n" +
			"tt1,95,Jane Doe,Shuffled,1998.0,Drama,6.1,John Roe\n"
		c, err := catalog.ReadCSV(strings.NewReader(data))
		Expect(err).NotTo(HaveOccurred())

		m := c.At(0)
		Expect(m.PrimaryTitle).To(Equal("Shuffled"))
		Expect(m.Directors).To(Equal("John Roe"))
		Expect(m.StartYear).To(Equal(1998))
		Expect(m.RuntimeMinutes).To(Equal(95))
	})

	It("strips a UTF-8 byte order mark from the header", func() {
		data := "\ufeffprimaryTitle,genres,directors,writers,averageRating,startYear,runtimeMinutes\n" +
			"BOM,Drama,A,B,5,2000,90\n"
		c, err := catalog.ReadCSV(strings.NewReader(data))
		Expect(err).NotTo(HaveOccurred())
		Expect(c.At(0).PrimaryTitle).To(Equal("BOM"))
	})

	It("returns a configuration error naming missing columns", func() {
		data := "primaryTitle,genres,averageRating\nX,Drama,5\n"
		_, err := catalog.ReadCSV(strings.NewReader(data))
		Expect(err).To(MatchError(catalog.ErrConfiguration))

		var missing *catalog.MissingColumnsError
		Expect(errors.As(err, &missing)).To(BeTrue())
		Expect(missing.Columns).To(Equal([]string{"directors", "writers", "startYear", "runtimeMinutes"}))
	})

	It("treats an empty input as missing every column", func() {
		_, err := catalog.ReadCSV(strings.NewReader(""))
		Expect(err).To(MatchError(catalog.ErrConfiguration))
	})

	It("loads a header-only file as an empty catalog", func() {
		c, err := catalog.ReadCSV(strings.NewReader(strings.Join(catalog.Columns, ",") + "\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Len()).To(BeZero())
	})

	It("loads short rows with the absent cells missing", func() {
		data := strings.Join(catalog.Columns, ",") + "\nShort Film,Drama,Jane Doe\n"
		c, err := catalog.ReadCSV(strings.NewReader(data))
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Len()).To(Equal(1))

		m := c.At(0)
		Expect(m.PrimaryTitle).To(Equal("Short Film"))
		Expect(m.Genres).To(Equal("Drama"))
		Expect(m.Directors).To(Equal("Jane Doe"))
		Expect(m.Writers).To(Equal(catalog.Unknown))
		Expect(m.AverageRating).To(BeZero())
		Expect(m.StartYear).To(BeZero())
		Expect(m.RuntimeMinutes).To(BeZero())
	})

	It("keeps bare quotes inside unquoted titles", func() {
		data := strings.Join(catalog.Columns, ",") + "\n" +
			"Heat,Crime,Michael Mann,Michael Mann,8.3,1995,170\n" +
			`The 12" Record,Music,Ann Lee,Ann Lee,6.1,2004,90` + "\n"
		c, err := catalog.ReadCSV(strings.NewReader(data))
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Len()).To(Equal(2))
		Expect(c.At(1).PrimaryTitle).To(Equal(`The 12" Record`))
		Expect(c.At(1).StartYear).To(Equal(2004))
	})
})

var _ = Describe("CSVSource", func() {
	It("loads a catalog from disk", func() {
		path := filepath.Join(GinkgoT().TempDir(), "movies.csv")
		Expect(os.WriteFile(path, []byte(testutils.CatalogCSV), 0o600)).To(Succeed())

		src := &catalog.CSVSource{Path: path}
		c, err := src.Load(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Len()).To(Equal(7))
	})

	It("reports a missing file as a configuration error", func() {
		src := &catalog.CSVSource{Path: filepath.Join(GinkgoT().TempDir(), "nope.csv")}
		_, err := src.Load(context.Background())
		Expect(err).To(MatchError(catalog.ErrConfiguration))
	})

	It("requires a path", func() {
		_, err := (&catalog.CSVSource{}).Load(context.Background())
		Expect(err).To(MatchError(catalog.ErrConfiguration))
	})
})

var _ = Describe("ParseInt", func() {
	It("accepts float spellings", func() {
		Expect(catalog.ParseInt("142.0")).To(Equal(142))
	})

	It("loads out-of-range values as zero", func() {
		Expect(catalog.ParseInt("1e20")).To(BeZero())
		Expect(catalog.ParseInt("-1e20")).To(BeZero())
	})

	It("loads missing and malformed values as zero", func() {
		Expect(catalog.ParseInt(`\N`)).To(BeZero())
		Expect(catalog.ParseInt("soon")).To(BeZero())
	})
})
