// Command grainsoft is a demonstration of the GrainSoft128-AEAD cipher:
// it dumps raw keystream bits for analysis tooling, and runs a small
// echo server and client exchanging authenticated packets over TCP.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ronitkumar98/GrainSoft128-AEAD/core"
	"github.com/ronitkumar98/GrainSoft128-AEAD/grainsoft"
)

var config struct {
	Verbose bool
}

func logf(f string, v ...interface{}) {
	if config.Verbose {
		log.Printf(f, v...)
	}
}

// fileConfig mirrors the command-line flags; flags take precedence over
// the file.
type fileConfig struct {
	Server  string `yaml:"server"`
	Client  string `yaml:"client"`
	Cipher  string `yaml:"cipher"`
	Key     string `yaml:"key"`
	Message string `yaml:"message"`
}

func main() {
	var flags struct {
		Server  string
		Client  string
		Cipher  string
		Key     string
		Nonce   string
		Message string
		Config  string
		Keygen  int
		Dump    int
	}

	flag.BoolVar(&config.Verbose, "verbose", false, "verbose mode")
	flag.StringVar(&flags.Cipher, "cipher", "grainsoft", "available ciphers: "+strings.Join(core.ListCipher(), " "))
	flag.StringVar(&flags.Key, "key", "", "hex-encoded key")
	flag.IntVar(&flags.Keygen, "keygen", 0, "generate a base64url-encoded random key of given length in byte")
	flag.IntVar(&flags.Dump, "dump", 0, "write the given number of raw keystream bits to stdout as ASCII 0/1")
	flag.StringVar(&flags.Nonce, "nonce", "", "hex-encoded nonce (used by -dump)")
	flag.StringVar(&flags.Server, "s", "", "server listen address")
	flag.StringVar(&flags.Client, "c", "", "server address to connect to")
	flag.StringVar(&flags.Message, "m", "hello from grainsoft", "message to send in client mode")
	flag.StringVar(&flags.Config, "config", "", "YAML config file; flags take precedence")
	flag.Parse()

	if flags.Config != "" {
		data, err := os.ReadFile(flags.Config)
		if err != nil {
			log.Fatal(err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			log.Fatal(err)
		}
		if flags.Server == "" {
			flags.Server = fc.Server
		}
		if flags.Client == "" {
			flags.Client = fc.Client
		}
		if flags.Key == "" {
			flags.Key = fc.Key
		}
		if fc.Cipher != "" && flags.Cipher == "grainsoft" {
			flags.Cipher = fc.Cipher
		}
		if fc.Message != "" {
			flags.Message = fc.Message
		}
	}

	if flags.Keygen > 0 {
		key := make([]byte, flags.Keygen)
		io.ReadFull(rand.Reader, key)
		fmt.Println(base64.URLEncoding.EncodeToString(key))
		return
	}

	if flags.Dump > 0 {
		key, err := hex.DecodeString(flags.Key)
		if err != nil {
			log.Fatal(err)
		}
		nonce, err := hex.DecodeString(flags.Nonce)
		if err != nil {
			log.Fatal(err)
		}
		if err := grainsoft.DumpKeystream(os.Stdout, key, nonce, flags.Dump); err != nil {
			log.Fatal(err)
		}
		fmt.Println()
		return
	}

	if flags.Server == "" && flags.Client == "" {
		flag.Usage()
		return
	}

	key, err := hex.DecodeString(flags.Key)
	if err != nil {
		log.Fatal(err)
	}
	aead, err := core.PickAEAD(flags.Cipher, key)
	if err != nil {
		log.Fatal(err)
	}

	if flags.Server != "" {
		if err := runServer(flags.Server, aead); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := runClient(flags.Client, aead, []byte(flags.Message)); err != nil {
		log.Fatal(err)
	}
}
