package rank_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"golang.org/x/text/language"

	"github.com/AFurtner/datatablesLocaleSort/collation"
	"github.com/AFurtner/datatablesLocaleSort/config"
	"github.com/AFurtner/datatablesLocaleSort/rank"
)

func germanColumn(caseInsensitive, fastPath bool) config.ResolvedColumnConfig {
	return config.ResolvedColumnConfig{
		Path:            "name",
		Locale:          "de",
		Tag:             language.MustParse("de"),
		CaseInsensitive: caseInsensitive,
		FastPath:        fastPath,
	}
}

var _ = Describe("Builder", func() {
	Context("when ranking a mixed German column case-insensitively", func() {
		var (
			builder *rank.Builder
			values  []string
		)

		BeforeEach(func() {
			builder = rank.NewBuilder(germanColumn(true, true))
			values = []string{"Zeder", "Arzt", "Ärzte", "Ast", "Baum"}
		})

		It("should scatter strictly increasing ranks back to the original positions", func() {
			Expect(builder.Build(values)).To(Equal([]int{4, 0, 1, 2, 3}))
		})

		It("should produce ranks consistent with the collation order of the values", func() {
			collator := collation.New(language.MustParse("de"), true)
			ranks := builder.Build(values)

			for i := range values {
				for j := range values {
					cmp := collator.Compare(values[i], values[j])
					switch {
					case cmp < 0:
						Expect(ranks[i]).To(BeNumerically("<", ranks[j]))
					case cmp > 0:
						Expect(ranks[i]).To(BeNumerically(">", ranks[j]))
					default:
						Expect(ranks[i]).To(Equal(ranks[j]))
					}
				}
			}
		})
	})

	Context("when ranking duplicate values case-insensitively", func() {
		It("should collapse all of them into a single tie group", func() {
			builder := rank.NewBuilder(germanColumn(true, true))

			Expect(builder.Build([]string{"Baum", "baum", "Baum"})).To(Equal([]int{0, 0, 0}))
		})

		It("should collapse ties to the earliest position of their run", func() {
			builder := rank.NewBuilder(germanColumn(true, true))

			// Sorted runs: apfel apfel, birne, zeder - ranks 0 0 2 3.
			Expect(builder.Build([]string{"Zeder", "Apfel", "apfel", "Birne"})).To(Equal([]int{3, 0, 0, 2}))
		})
	})

	Context("when the column is case sensitive", func() {
		It("should give differently cased values distinct ranks", func() {
			builder := rank.NewBuilder(germanColumn(false, false))
			ranks := builder.Build([]string{"Ast", "ast"})

			Expect(ranks[0]).NotTo(Equal(ranks[1]))
		})
	})

	Context("when ranking an all-ASCII column", func() {
		var values []string

		BeforeEach(func() {
			values = []string{"pear", "Apple", "banana", "apple", "Cherry"}
		})

		It("should produce the same ranks with and without the ordinal fast path", func() {
			fast := rank.NewBuilder(germanColumn(true, true))
			full := rank.NewBuilder(germanColumn(true, false))

			Expect(fast.Build(values)).To(Equal(full.Build(values)))
		})

		It("should collapse folded duplicates on the fast path", func() {
			builder := rank.NewBuilder(germanColumn(true, true))

			Expect(builder.Build(values)).To(Equal([]int{4, 0, 2, 0, 3}))
		})
	})

	Context("when the column snapshot is trivial", func() {
		It("should produce an empty rank array for no values", func() {
			builder := rank.NewBuilder(germanColumn(true, true))

			Expect(builder.Build(nil)).To(BeEmpty())
		})

		It("should rank a single value as zero", func() {
			builder := rank.NewBuilder(germanColumn(true, true))

			Expect(builder.Build([]string{"Baum"})).To(Equal([]int{0}))
		})

		It("should classify the empty string as ASCII and rank it first", func() {
			builder := rank.NewBuilder(germanColumn(true, true))

			Expect(builder.Build([]string{"Baum", ""})).To(Equal([]int{1, 0}))
		})
	})
})
