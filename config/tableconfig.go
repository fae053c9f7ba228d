package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/birkirb/loggers.v1/log"
)

const dotJSON = ".json"

var (
	// ErrUnknownTable indicates that a requested table is not
	// known to a ConfigMapper.
	ErrUnknownTable = errors.New("unknown table")

	// ErrUnknownColumn indicates that a requested column is
	// not known to a ResolvedTableConfig.
	ErrUnknownColumn = errors.New("unknown column")
)

// DuplicateColumnError indicates that a table configuration declares the
// same column path more than once, which would make rank lookups ambiguous.
type DuplicateColumnError struct {
	table  string
	column string
}

func (e DuplicateColumnError) Error() string {
	return fmt.Sprintf("duplicate column %s in configuration of table %s", e.column, e.table)
}

// TableConfig describes the rank configuration for a single table, with
// all its columns.
type TableConfig struct {
	Table         string         `json:"table"`
	DefaultLocale string         `json:"defaultLocale"`
	Columns       []ColumnConfig `json:"columns"`
}

// ColumnConfig is the raw, as-loaded configuration of a single column.
// CaseInsensitive is a pointer so that an absent value can be told apart
// from an explicit false - the default is true.
type ColumnConfig struct {
	Path            string `json:"path"`
	Locale          string `json:"locale"`
	CaseInsensitive *bool  `json:"caseInsensitive"`
	DisableFastPath bool   `json:"disableFastPath"`
}

// ValidateIntegrity checks that the table configuration is valid, that is,
// that no column path is declared twice.
func (tableConfig TableConfig) ValidateIntegrity() error {
	seen := make(map[string]struct{}, len(tableConfig.Columns))

	for _, column := range tableConfig.Columns {
		if _, exists := seen[column.Path]; exists {
			return &DuplicateColumnError{
				table:  tableConfig.Table,
				column: column.Path,
			}
		}

		seen[column.Path] = struct{}{}
	}

	return nil
}

// ResolvedColumnConfig is a ColumnConfig with all defaults resolved and
// frozen in: the locale is parsed into a concrete language tag, case
// sensitivity is explicit, and the ASCII fast path flag is final.
type ResolvedColumnConfig struct {
	Path            string
	Locale          string
	Tag             language.Tag
	CaseInsensitive bool
	FastPath        bool
}

// ResolvedTableConfig describes the resolved configuration for a table,
// that is, all column defaults resolved against the table default locale
// and the ambient system locale.
type ResolvedTableConfig struct {
	originalConfig TableConfig
	columns        []ResolvedColumnConfig
	columnsMap     map[string]ResolvedColumnConfig
}

// OriginalConfig returns the original TableConfig without resolved defaults.
func (resolvedTableConfig ResolvedTableConfig) OriginalConfig() TableConfig {
	return resolvedTableConfig.originalConfig
}

// Column retrieves the ResolvedColumnConfig for a single column path, or
// returns an ErrUnknownColumn, if the column does not exist.
func (resolvedTableConfig ResolvedTableConfig) Column(path string) (ResolvedColumnConfig, error) {
	if _, exists := resolvedTableConfig.columnsMap[path]; !exists {
		return ResolvedColumnConfig{}, ErrUnknownColumn
	}

	return resolvedTableConfig.columnsMap[path], nil
}

// Columns returns all resolved columns in declaration order.
func (resolvedTableConfig ResolvedTableConfig) Columns() []ResolvedColumnConfig {
	columns := make([]ResolvedColumnConfig, len(resolvedTableConfig.columns))
	copy(columns, resolvedTableConfig.columns)

	return columns
}

// ConfigMapper is a mapper which maps table names to resolved rank
// configurations.
type ConfigMapper struct {
	configs  map[string]TableConfig
	resolved map[string]ResolvedTableConfig
}

func readFromPath(configPath string) (TableConfig, error) {
	file, err := ioutil.ReadFile(configPath)
	if err != nil {
		return TableConfig{}, err
	}

	dat := TableConfig{}
	if err := json.Unmarshal(file, &dat); err != nil {
		return TableConfig{}, err
	}

	return dat, nil
}

// NewConfigMapperFromFolder builds a new config mapper from a given folder,
// recursively loading all table config jsons which are found in there. The
// ambient system locale is determined once here, and frozen into every
// resolved column configuration.
func NewConfigMapperFromFolder(configRoot string) (ConfigMapper, error) {
	// Normalize the path, and eliminate separator inconsistencies
	normalizedRoot, err := filepath.Abs(configRoot)
	if err != nil {
		return ConfigMapper{}, err
	}

	configs := make(map[string]TableConfig)
	if walkErr := filepath.Walk(normalizedRoot, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if filepath.Ext(path) == dotJSON {
			tableConfig, err := readFromPath(path)
			if err != nil {
				return err
			}

			configs[normalizeConfigKey(path, normalizedRoot)] = tableConfig
		} else if !f.IsDir() {
			log.WithField("file", path).Debug("Ignoring file, as not a json file!")
		}

		return nil
	}); walkErr != nil {
		return ConfigMapper{}, walkErr
	}

	log.WithField("count", len(configs)).Info("Successfully loaded table configs")

	// ----------

	ambientLocale := SystemLocale()
	resolved := mapConfigsToResolvedConfigs(configs, ambientLocale)

	return ConfigMapper{
		configs:  configs,
		resolved: resolved,
	}, nil
}

// normalizeConfigKey calculates the name of a table config by its path
// relative to the root of all configs. This method also normalizes system
// specific path separators (e.g. / or \) to "/".
func normalizeConfigKey(configPath, configRoot string) string {
	normalizedPath := strings.TrimSuffix(
		// Remove Extension
		strings.TrimPrefix(
			// Remove Separator
			strings.TrimPrefix(
				// Remove configRoot
				configPath,
				configRoot,
			),
			string(os.PathSeparator),
		),
		filepath.Ext(configPath),
	)

	return strings.Replace(strings.ToLower(normalizedPath), string(os.PathSeparator), "/", -1)
}

func mapConfigsToResolvedConfigs(configs map[string]TableConfig, ambientLocale string) map[string]ResolvedTableConfig {
	resolved := make(map[string]ResolvedTableConfig, len(configs))

	for table, tableConfig := range configs {
		resolved[table] = resolveTableConfig(tableConfig, ambientLocale)
	}

	return resolved
}

// ResolveTableConfig resolves a programmatically assembled TableConfig
// against the ambient system locale, the same way the mapper resolves
// configs loaded from disk. The ambient locale is determined once, here.
func ResolveTableConfig(tableConfig TableConfig) ResolvedTableConfig {
	return resolveTableConfig(tableConfig, SystemLocale())
}

func resolveTableConfig(tableConfig TableConfig, ambientLocale string) ResolvedTableConfig {
	resolvedColumns := resolveColumns(tableConfig, ambientLocale)

	resolvedColumnsMap := make(map[string]ResolvedColumnConfig)
	for _, column := range resolvedColumns {
		resolvedColumnsMap[column.Path] = column
	}

	return ResolvedTableConfig{
		originalConfig: tableConfig,
		columns:        resolvedColumns,
		columnsMap:     resolvedColumnsMap,
	}
}

func resolveColumns(tableConfig TableConfig, ambientLocale string) []ResolvedColumnConfig {
	tableDefault := tableConfig.DefaultLocale
	if tableDefault == "" {
		tableDefault = ambientLocale
	}

	resolvedColumns := make([]ResolvedColumnConfig, len(tableConfig.Columns))
	for i, column := range tableConfig.Columns {
		resolvedColumns[i] = resolveColumn(column, tableDefault)
	}

	return resolvedColumns
}

func resolveColumn(column ColumnConfig, defaultLocale string) ResolvedColumnConfig {
	locale := column.Locale
	if locale == "" {
		locale = defaultLocale
	}

	tag, resolvedLocale := parseLocale(locale, defaultLocale)

	caseInsensitive := true
	if column.CaseInsensitive != nil {
		caseInsensitive = *column.CaseInsensitive
	}

	// The ordinal fast path only agrees with collation order when values
	// are case folded first, so a case sensitive column never takes it.
	fastPath := caseInsensitive && !column.DisableFastPath

	return ResolvedColumnConfig{
		Path:            column.Path,
		Locale:          resolvedLocale,
		Tag:             tag,
		CaseInsensitive: caseInsensitive,
		FastPath:        fastPath,
	}
}

// Table retrieves a specific table config from the mapper if existing, or
// returns an ErrUnknownTable otherwise.
func (configMapper ConfigMapper) Table(table string) (TableConfig, error) {
	if _, exists := configMapper.configs[table]; !exists {
		return TableConfig{}, ErrUnknownTable
	}

	return configMapper.configs[table], nil
}

// Tables returns all table configs which the mapper knows, in no particular order.
func (configMapper ConfigMapper) Tables() []TableConfig {
	tables := make([]TableConfig, len(configMapper.configs))

	i := 0
	for _, v := range configMapper.configs {
		tables[i] = v
		i++
	}

	return tables
}

// ResolvedTable retrieves a specific resolved table config from the mapper
// if existing, or returns an ErrUnknownTable otherwise.
func (configMapper ConfigMapper) ResolvedTable(table string) (ResolvedTableConfig, error) {
	if _, exists := configMapper.resolved[table]; !exists {
		return ResolvedTableConfig{}, ErrUnknownTable
	}

	return configMapper.resolved[table], nil
}

// ResolvedTables returns all resolved table configs which the mapper knows,
// mapped by their normalized name.
func (configMapper ConfigMapper) ResolvedTables() map[string]ResolvedTableConfig {
	tables := make(map[string]ResolvedTableConfig, len(configMapper.resolved))

	for k, v := range configMapper.resolved {
		tables[k] = v
	}

	return tables
}

// ValidateIntegrity iteratively checks all table configs known to the
// mapper for integrity.
func (configMapper ConfigMapper) ValidateIntegrity() error {
	for _, tableConfig := range configMapper.configs {
		if err := tableConfig.ValidateIntegrity(); err != nil {
			return err
		}
	}

	return nil
}
