package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/wonderfulspam/connector-smith/pkg/classifier"
	"github.com/wonderfulspam/connector-smith/pkg/connector"
	"github.com/wonderfulspam/connector-smith/pkg/differ"
)

// Options configures an Engine. The zero value is usable: default logger,
// default rule table, folder-only bulk events, CPU-bound concurrency.
type Options struct {
	Logger *logrus.Logger
	Rules  []classifier.Rule

	// IncludeFilesOnFolderChange forwards to the reconciler: emit per-file
	// entries under folders that exist in only one tree.
	IncludeFilesOnFolderChange bool

	// Concurrency caps how many connectors reconcile at once. <= 0 means
	// NumCPU.
	Concurrency int64
}

// Engine runs the full change detection pipeline: connector discovery,
// per-connector reconciliation, and severity classification.
type Engine struct {
	reader      *connector.Reader
	reconciler  *differ.Reconciler
	classifier  *classifier.Classifier
	log         *logrus.Logger
	concurrency int64
}

func New(opts *Options) *Engine {
	if opts == nil {
		opts = &Options{}
	}

	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	reader := connector.NewReader(log)
	reconciler := differ.NewReconciler(reader)
	reconciler.IncludeFilesOnFolderChange = opts.IncludeFilesOnFolderChange

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = int64(runtime.NumCPU())
	}

	return &Engine{
		reader:      reader,
		reconciler:  reconciler,
		classifier:  classifier.New(opts.Rules),
		log:         log,
		concurrency: concurrency,
	}
}

// Run compares the connector trees under previousRoot and currentRoot and
// returns one report per connector, ordered lexicographically by connector
// name. Only the both-roots-missing precondition fails the run; a failure
// inside one connector is captured in that connector's report and the batch
// continues.
func (e *Engine) Run(ctx context.Context, previousRoot, currentRoot string) ([]differ.ConnectorReport, error) {
	prevOK, prevErr := connector.StatDir(previousRoot)
	currOK, currErr := connector.StatDir(currentRoot)

	prevUsable := prevOK && prevErr == nil
	currUsable := currOK && currErr == nil

	if !prevUsable && !currUsable {
		return nil, fmt.Errorf("neither root is readable: previous %q, current %q", previousRoot, currentRoot)
	}

	names := e.connectorUnion(previousRoot, currentRoot)
	reports := make([]differ.ConnectorReport, len(names))

	sem := semaphore.NewWeighted(e.concurrency)
	group, groupCtx := errgroup.WithContext(ctx)

	for i, name := range names {
		i, name := i, name
		group.Go(func() error {
			if err := sem.Acquire(groupCtx, 1); err != nil {
				return fmt.Errorf("acquire semaphore: %w", err)
			}
			defer sem.Release(1)

			reports[i] = e.runConnector(name, previousRoot, currentRoot)
			return nil
		})
	}

	// Tasks only fail on cancellation; connector failures live in the reports.
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("change detection aborted: %w", err)
	}

	return reports, nil
}

// runConnector reconciles and classifies a single connector. A panic or
// filesystem error becomes the report's ProcessingError.
func (e *Engine) runConnector(name, previousRoot, currentRoot string) (report differ.ConnectorReport) {
	report = differ.ConnectorReport{Connector: name, Changes: []differ.Change{}}

	defer func() {
		if r := recover(); r != nil {
			e.log.WithField("connector", name).Errorf("Panic while reconciling: %v", r)
			report.Changes = []differ.Change{}
			report.ProcessingError = fmt.Sprintf("panic while reconciling: %v", r)
		}
	}()

	changes, err := e.reconciler.Reconcile(
		filepath.Join(previousRoot, name),
		filepath.Join(currentRoot, name),
	)
	if err != nil {
		e.log.WithError(err).WithField("connector", name).Error("Failed to reconcile connector")
		report.ProcessingError = err.Error()
		return report
	}

	for i := range changes {
		changes[i].Severity = e.classifier.Classify(changes[i])
	}

	report.Changes = changes
	return report
}

// connectorUnion merges the connector names found under both roots into one
// sorted list. Lexicographic order is part of the contract: output order is
// reproducible across runs.
func (e *Engine) connectorUnion(previousRoot, currentRoot string) []string {
	nameSet := make(map[string]struct{})
	for _, name := range e.reader.ListConnectors(previousRoot) {
		nameSet[name] = struct{}{}
	}
	for _, name := range e.reader.ListConnectors(currentRoot) {
		nameSet[name] = struct{}{}
	}

	names := make([]string, 0, len(nameSet))
	for name := range nameSet {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
