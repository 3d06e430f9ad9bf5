// Package config loads training and serving settings from a .properties file.
package config

import (
	"github.com/magiconair/properties"
	"github.com/pkg/errors"
	"github.com/textclf/spamsvm/dataset"
	"github.com/textclf/spamsvm/features"
	"github.com/textclf/spamsvm/learning"
	"github.com/textclf/spamsvm/preprocess"
	"os"
)

// Env names the environment variable holding the path of the configuration file.
const Env = "SPAMSVM_CONFIG"

// Config is the complete configuration. Every key is optional.
type Config struct {
	Train Train `properties:"train"`
	Serve Serve `properties:"serve"`
}

// Train configures a training run.
type Train struct {
	Data        string  `properties:"data,default=dataset/sms_spam_no_header.csv"`
	Out         string  `properties:"out,default=artifacts"`
	Seed        int64   `properties:"seed,default=42"`
	TestSize    float64 `properties:"test_size,default=0.2"`
	Balanced    bool    `properties:"balanced,default=false"`
	MaxFeatures int     `properties:"max_features,default=50000"`
	MinDF       int     `properties:"min_df,default=2"`
	StopWords   string  `properties:"stop_words,default=en"`
	Tokeniser   string  `properties:"tokeniser,default=regexp"`
	Stem        bool    `properties:"stem,default=false"`
	Fold        bool    `properties:"fold,default=false"`
	C           float64 `properties:"c,default=1"`
	Loss        string  `properties:"loss,default=squared_hinge"`
	Tol         float64 `properties:"tol,default=0.0001"`
	MaxIter     int     `properties:"max_iter,default=1000"`
	DatasetURL  string  `properties:"dataset_url,default="`
	Download    bool    `properties:"download,default=false"`
	Progress    bool    `properties:"progress,default=false"`
}

// Serve configures the HTTP front end.
type Serve struct {
	Addr      string `properties:"addr,default=:8080"`
	Artifacts string `properties:"artifacts,default=artifacts"`
	Cache     int    `properties:"cache,default=1024"`
	Bootstrap bool   `properties:"bootstrap,default=false"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	c, err := decode(properties.NewProperties())
	if err != nil {
		panic(err)
	}
	return c
}

// Load reads the configuration file at path. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if len(path) == 0 {
		return Default(), nil
	}
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return Config{}, errors.Wrapf(err, "loading configuration %s", path)
	}
	c, err := decode(p)
	if err != nil {
		return Config{}, errors.Wrapf(err, "decoding configuration %s", path)
	}
	return c, nil
}

// FromEnv loads the file named by the SPAMSVM_CONFIG environment variable, if set.
func FromEnv() (Config, error) {
	return Load(os.Getenv(Env))
}

func decode(p *properties.Properties) (Config, error) {
	var c Config
	if err := p.Decode(&c); err != nil {
		return c, err
	}
	if len(c.Train.DatasetURL) == 0 {
		c.Train.DatasetURL = dataset.DefaultURL
	}
	return c, nil
}

// Features returns the vectoriser options of a training run.
func (t Train) Features() features.Options {
	a := preprocess.DefaultOptions
	a.StopWords = t.StopWords
	a.Tokeniser = t.Tokeniser
	a.Stem = t.Stem
	a.Fold = t.Fold
	return features.Options{
		MinDF:       t.MinDF,
		MaxFeatures: t.MaxFeatures,
		Analyser:    a,
	}
}

// SVM returns the classifier parameters of a training run.
func (t Train) SVM() learning.SVMParams {
	p := learning.DefaultSVMParams
	p.C = t.C
	p.Loss = t.Loss
	p.Tol = t.Tol
	p.MaxIter = t.MaxIter
	p.Balanced = t.Balanced
	p.Seed = t.Seed
	return p
}
