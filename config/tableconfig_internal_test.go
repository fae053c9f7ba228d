package config

import (
	"os"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"golang.org/x/text/language"
)

var _ = Describe("Config mapper internals", func() {
	Context("when trying to load a non existing file", func() {
		var (
			err error
		)

		BeforeEach(func() {
			_, err = readFromPath("does-not-exist.json")
		})

		It("should error", func() {
			Expect(err).To(HaveOccurred())
		})
	})

	Context("when determining the system locale", func() {
		var originalValues map[string]string

		BeforeEach(func() {
			originalValues = make(map[string]string)
			for _, name := range localeEnvVars {
				originalValues[name] = os.Getenv(name)
				os.Unsetenv(name)
			}
		})

		AfterEach(func() {
			for _, name := range localeEnvVars {
				if originalValues[name] == "" {
					os.Unsetenv(name)
				} else {
					os.Setenv(name, originalValues[name])
				}
			}
		})

		It("should normalize the codeset suffix and separator away", func() {
			os.Setenv("LC_ALL", "de_DE.UTF-8")

			Expect(SystemLocale()).To(Equal("de-DE"))
		})

		It("should skip the C locale and keep looking", func() {
			os.Setenv("LC_ALL", "C")
			os.Setenv("LANG", "sv_SE.UTF-8")

			Expect(SystemLocale()).To(Equal("sv-SE"))
		})

		It("should fall back to en when nothing usable is set", func() {
			Expect(SystemLocale()).To(Equal("en"))
		})
	})

	Context("when parsing locale identifiers", func() {
		It("should keep a parseable locale as-is", func() {
			tag, locale := parseLocale("de", "en")

			Expect(tag).To(Equal(language.MustParse("de")))
			Expect(locale).To(Equal("de"))
		})

		It("should fall back to the default for a malformed locale", func() {
			tag, locale := parseLocale("not a locale !!", "de")

			Expect(tag).To(Equal(language.MustParse("de")))
			Expect(locale).To(Equal("de"))
		})

		It("should fall back to English when the default is malformed as well", func() {
			tag, locale := parseLocale("not a locale !!", "also not one !!")

			Expect(tag).To(Equal(language.English))
			Expect(locale).To(Equal("en"))
		})
	})
})
