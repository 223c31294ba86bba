// Package config loads the command line, environment and configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
)

// FileName is the name of the JSON configuration file looked up in the working and home directories
const FileName = ".json2jsonl.json"

type Config struct {
	Version  kong.VersionFlag `kong:"short='v',help='Show version and exit.'"`
	Config   kong.ConfigFlag  `kong:"short='c',help='Load configuration from a file.'"`
	Infile   string           `kong:"short='i',optional,help='Input JSON document: a file path, an s3:// URL or a blob URL. Standard input is read when empty or -.',env='JSON2JSONL_INFILE'"`
	Dataset  string           `kong:"short='s',default='generic',enum='generic,Deaths,MinimalInfoUniqueTests',help='Record type of the array elements (${enum}).',env='JSON2JSONL_DATASET'"`
	Source   string           `kong:"default='auto',enum='auto,file,stdin,s3,azblob',help='How the input is opened (${enum}).',env='JSON2JSONL_SOURCE'"`
	LogLevel string           `kong:"short='l',default='info',enum='debug,info,warn,error,silent',help='Log level',env='JSON2JSONL_LOG_LEVEL'"`
	S3       struct {
		Region          string `kong:"help='AWS region',env='JSON2JSONL_S3_REGION'"`
		AccessKey       string `kong:"help='AWS access key',env='JSON2JSONL_S3_ACCESS_KEY'"`
		SecretAccessKey string `kong:"help='AWS secret access key',env='JSON2JSONL_S3_SECRET_ACCESS_KEY'"`
		Endpoint        string `kong:"help='S3 endpoint',env='JSON2JSONL_S3_ENDPOINT',default='s3.amazonaws.com'"`
		DisableSSL      bool   `kong:"help='Disable SSL for S3 connection',env='JSON2JSONL_S3_DISABLE_SSL'"`
		UsePathStyle    bool   `kong:"help='Use path style for S3 connection',env='JSON2JSONL_S3_USE_PATH_STYLE'"`
	} `kong:"optional,group='s3',embed,prefix='s3.'"`
	Azure struct {
		AccountName string `kong:"help='Azure storage account name',env='JSON2JSONL_AZURE_ACCOUNT_NAME,AZURE_STORAGE_ACCOUNT'"`
		AccountKey  string `kong:"help='Azure storage account key',env='JSON2JSONL_AZURE_ACCOUNT_KEY,AZURE_STORAGE_KEY'"`
	} `kong:"optional,group='azure',embed,prefix='azure.'"`
	Dev DevFlag `kong:"group='dev',embed,prefix='dev.'"`
}

type Version struct {
	Version  string
	Revision string
}

// Load parses args (without the program name) on top of the configuration files and environment.
// Extra kong options are applied after the defaults.
func Load(version Version, args []string, options ...kong.Option) (*Config, error) {
	// Find config file paths
	var configPaths []string
	if wd, err := os.Getwd(); err == nil {
		configPaths = append(configPaths, filepath.Join(wd, FileName))
	}
	if userHomeDir, err := os.UserHomeDir(); err == nil {
		configPaths = append(configPaths, filepath.Join(userHomeDir, FileName))
	}

	config := &Config{}
	parser, err := kong.New(config, append([]kong.Option{
		kong.Name("json2jsonl"),
		kong.Description("Convert a JSON document holding one big array into JSON Lines"),
		kong.Configuration(kong.JSON, configPaths...),
		kong.Vars{"version": fmt.Sprintf("%s (%s)", version.Version, version.Revision)},
		kong.UsageOnError(),
	}, options...)...)
	if err != nil {
		return nil, fmt.Errorf("create parser: %w", err)
	}

	if _, err := parser.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return config, nil
}
