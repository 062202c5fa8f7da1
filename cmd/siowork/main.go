// siowork drives one or more controllable workers against a storage
// backend, optionally forwarding their lifecycle to a monitor process,
// and writes a final JSON performance report.
package main

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/docopt/docopt-go"

	"github.com/softiron/cworker/internal/config"
	"github.com/softiron/cworker/internal/generator"
	"github.com/softiron/cworker/internal/logger"
	"github.com/softiron/cworker/internal/notify"
	"github.com/softiron/cworker/internal/stats"
	"github.com/softiron/cworker/internal/storage"
	"github.com/softiron/cworker/internal/workload"
	"github.com/softiron/cworker/pkg/worker"
)

// arguments is the struct docopt binds the parsed command line into.
type arguments struct {
	File     bool
	S3       bool
	Run      bool
	Verbose  bool
	Encoding string

	Port       int
	MountsDir  string
	Size       string
	Workers    int
	RunTime    int
	JSONOutput string
	Target     string

	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Port      int

	Monitor string

	sizeInBytes uint64
}

func usage() string {
	return `siowork - controllable storage worker harness.

Usage:
  siowork file run   [-v] [-s SIZE] [-n COUNT] [-r TIME] [-j FILE] [-e ENC] [-M ADDR] <target>
  siowork s3 run     [-v] [-s SIZE] [-n COUNT] [-r TIME] [-j FILE] [-e ENC] [-M ADDR] <target>
                     [--s3-port PORT] [--s3-bucket BUCKET] (--s3-access-key KEY) (--s3-secret-key KEY)
  siowork -h | --help

Options:
  -h, --help                   Show full usage
  -v, --verbose                Turn on debug output
  -s SIZE, --size SIZE         Object size, in units of K or M           [default: 4K]
  -n COUNT, --workers COUNT    Number of concurrent controllable workers [default: 1]
  -r TIME, --run-time TIME     Seconds to run before stopping workers    [default: 10]
  -j FILE, --json-output FILE  File to write the JSON report to          [default: siowork.json]
  -e ENC, --encoding ENC       Wire encoding for the monitor connection: gob or json [default: gob]
  -M ADDR, --monitor ADDR      Address of a monitor process to forward lifecycle events to (optional)
  --s3-port PORT               Port to connect to S3 on                  [default: 7480]
  --s3-bucket BUCKET           Bucket to use for S3 operations            [default: siowork]
  --s3-access-key KEY          S3 access key
  --s3-secret-key KEY          S3 secret key
`
}

func dieOnError(err error, format string, a ...interface{}) {
	if err != nil {
		fmt.Fprintf(os.Stderr, format, a...)
		fmt.Fprintf(os.Stderr, ": %v\n", err)
		os.Exit(1)
	}
}

// expandUnits converts a string with an optional K/M/G suffix into a
// plain byte count, e.g. "4K" -> 4096.
func expandUnits(val string) (uint64, error) {
	re := regexp.MustCompile(`([0-9]+)([kKmMgG]?)$`)

	groups := re.FindStringSubmatch(val)
	if groups == nil {
		return 0, fmt.Errorf("bad size specifier: %v", val)
	}

	n, _ := strconv.Atoi(groups[1])
	result := uint64(n)

	switch strings.ToLower(groups[2]) {
	case "k":
		result *= 1024
	case "m":
		result *= 1024 * 1024
	case "g":
		result *= 1024 * 1024 * 1024
	}

	return result, nil
}

func validateArguments(args *arguments) error {
	if args.Port < 0 || args.Port > math.MaxUint16 {
		return fmt.Errorf("port not in range: %v", args.Port)
	}

	sizeInBytes, err := expandUnits(args.Size)
	if err != nil {
		return err
	}
	args.sizeInBytes = sizeInBytes

	return nil
}

func encoderFactory(name string) (notify.EncoderFactory, error) {
	switch name {
	case "gob":
		return notify.MakeGobEncoderFactory(), nil
	case "json":
		return notify.MakeJSONEncoderFactory(), nil
	}
	return nil, fmt.Errorf("unknown encoding: %v", name)
}

func main() {
	opts, err := docopt.ParseDoc(usage())
	dieOnError(err, "error parsing arguments")

	var args arguments
	err = opts.Bind(&args)
	dieOnError(err, "failure binding arguments")

	err = validateArguments(&args)
	dieOnError(err, "invalid arguments")

	if args.Verbose {
		logger.SetLevel(logger.Debug)
	}

	config.Set(config.Config{MountsDir: args.MountsDir})

	conn, err := buildConnection(&args)
	dieOnError(err, "failure building storage connection")

	err = conn.Connect()
	dieOnError(err, "failure connecting to storage backend")
	defer conn.Close()

	var remote *notify.MessageConnection
	if args.Monitor != "" {
		factory, err := encoderFactory(args.Encoding)
		dieOnError(err, "invalid encoding")

		remote, err = notify.ConnectTCP(args.Monitor, factory, 5*time.Second)
		dieOnError(err, "failure connecting to monitor")
		defer remote.Close()
	}

	statCh := make(chan *stats.Stat, 256)
	report := stats.NewReport(args.sizeInBytes)
	go report.Collect(statCh)

	gen := generator.NewPRNGGenerator(uint64(time.Now().Unix()))
	workers := make([]*worker.Worker, args.Workers)

	for i := range workers {
		name := fmt.Sprintf("worker-%d", i)
		keyPrefix := fmt.Sprintf("siowork-%d", i)

		execute := workload.StorageLoop(conn, gen, args.sizeInBytes, keyPrefix, statCh)
		w := worker.New(name, execute)

		if remote != nil {
			w.AddListener(notify.NewRemoteObserver(name, remote))
		}

		workers[i] = w
	}

	for _, w := range workers {
		if err := w.Start(); err != nil {
			report.AddError(err)
			logger.Errorf("failure starting %v: %v\n", w.Name(), err)
		}
	}

	logger.Infof("running %d worker(s) for %ds against %v\n", len(workers), args.RunTime, conn.Target())
	time.Sleep(time.Duration(args.RunTime) * time.Second)

	for _, w := range workers {
		if err := w.Stop(); err != nil {
			report.AddError(err)
		}
	}

	for _, w := range workers {
		waitForStopped(w)
	}

	close(statCh)

	err = report.WriteFile(args.JSONOutput)
	dieOnError(err, "failure writing json report")

	logger.Infof("done\n")
}

func buildConnection(args *arguments) (storage.Connection, error) {
	if args.S3 {
		return storage.New("s3", args.Target, storage.Config{
			"bucket":     args.S3Bucket,
			"access_key": args.S3AccessKey,
			"secret_key": args.S3SecretKey,
			"port":       strconv.Itoa(args.S3Port),
		})
	}

	return storage.New("file", args.Target, storage.Config{})
}

// waitForStopped polls until w has left the states that still have a
// live execution task. A stopped controllable worker settles quickly;
// this is not a busy loop the way a production scheduler would want,
// but it matches the teacher's own poll-based response handling in
// spirit, traded here for docopt CLI simplicity.
func waitForStopped(w *worker.Worker) {
	for !w.IsStopped() && !w.IsCrashed() {
		time.Sleep(10 * time.Millisecond)
	}
}
