// Package deployer sequences the remote operations of a deployment:
// bundle, upload, build, verify, and config var reconciliation.
package deployer

import (
	"context"
	"fmt"
	"io"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/airlift-sh/airlift/bundle"
	"github.com/airlift-sh/airlift/config"
	"github.com/airlift-sh/airlift/constants"
	"github.com/airlift-sh/airlift/git"
	"github.com/airlift-sh/airlift/platform"
)

// BuildError is a build that finished with any terminal status other
// than succeeded. It is an expected operational outcome, so it carries
// the full build record for the operator instead of internal detail.
type BuildError struct {
	Build *platform.Build
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build %s finished with status %q", e.Build.ID, e.Build.Status)
}

// Deployer runs deployments for one application. Every operation is
// strictly sequential and stops at the first failure; nothing is
// retried.
type Deployer struct {
	cfg    *config.Config
	client *platform.Client
	bundle *bundle.Builder
	out    io.Writer

	logSettle    time.Duration
	statusSettle time.Duration
}

// New returns a Deployer writing build output to out.
func New(cfg *config.Config, client *platform.Client, out io.Writer) *Deployer {
	return &Deployer{
		cfg:          cfg,
		client:       client,
		bundle:       bundle.New(cfg.SrcDir, cfg.Patterns),
		out:          out,
		logSettle:    constants.LogSettleDelay,
		statusSettle: constants.StatusSettleDelay,
	}
}

// run accumulates the state the pipeline steps hand to each other: the
// packed archive, the ephemeral source, the resolved version label and
// the build record.
type run struct {
	archive string
	src     *platform.Source
	version string
	build   *platform.Build
}

type step struct {
	name string
	fn   func(ctx context.Context, r *run) error
}

// DeployApp bundles the source, uploads it, builds it remotely and
// verifies the result. The first failing step aborts everything after
// it, including the final cleanup: a failed deployment leaves the
// staged bundle on disk on purpose, so the operator can inspect what
// would have been deployed.
func (d *Deployer) DeployApp(ctx context.Context) error {
	var steps []step
	if d.cfg.Force {
		log.Info("platform status check skipped (force)")
	} else {
		steps = append(steps, step{"check platform status", d.checkPlatformStatus})
	}
	steps = append(steps,
		step{"pack bundle", d.packBundle},
		step{"create source", d.createSource},
		step{"upload source", d.uploadSource},
		step{"update buildpacks", d.updateBuildpacks},
		step{"resolve version", d.resolveVersion},
		step{"build", d.build},
		step{"verify build", d.verifyBuild},
		step{"clear bundle", d.clearBundle},
	)

	r := &run{}
	for _, s := range steps {
		log.WithField("step", s.name).Info("starting")
		if err := s.fn(ctx, r); err != nil {
			return err
		}
	}
	log.WithField("app", d.cfg.App).Info("application deployed")
	return nil
}

// DeployConfig reconciles the app's remote config vars with the
// desired state declared in the configuration, pushing only the delta.
func (d *Deployer) DeployConfig(ctx context.Context) error {
	current, err := d.client.ConfigVars(ctx, d.cfg.App)
	if err != nil {
		return err
	}
	delta := ComputeDelta(d.cfg.Env, current)
	if len(delta) == 0 {
		log.Info("config vars already up to date")
		return nil
	}
	log.WithField("changes", len(delta)).Info("updating config vars")
	return d.client.UpdateConfigVars(ctx, d.cfg.App, delta)
}

// Deploy runs DeployApp to completion and then DeployConfig. A failed
// application deployment means the config vars are never touched.
func (d *Deployer) Deploy(ctx context.Context) error {
	if err := d.DeployApp(ctx); err != nil {
		return err
	}
	return d.DeployConfig(ctx)
}

func (d *Deployer) checkPlatformStatus(ctx context.Context, r *run) error {
	systems, err := d.client.Status(ctx)
	if err != nil {
		return err
	}
	for _, s := range systems {
		if s.Status != platform.StatusGreen {
			return fmt.Errorf("platform is not healthy: %s is %s", s.System, s.Status)
		}
	}
	return nil
}

func (d *Deployer) packBundle(ctx context.Context, r *run) (err error) {
	r.archive, err = d.bundle.Pack()
	return
}

func (d *Deployer) createSource(ctx context.Context, r *run) (err error) {
	r.src, err = d.client.CreateSource(ctx, d.cfg.App)
	return
}

func (d *Deployer) uploadSource(ctx context.Context, r *run) error {
	return d.client.UploadSource(ctx, r.archive, r.src)
}

func (d *Deployer) updateBuildpacks(ctx context.Context, r *run) error {
	if len(d.cfg.Buildpacks) == 0 {
		log.Info("no buildpacks configured, leaving remote buildpacks alone")
		return nil
	}
	return d.client.UpdateBuildpacks(ctx, d.cfg.App, d.cfg.Buildpacks)
}

func (d *Deployer) resolveVersion(ctx context.Context, r *run) error {
	r.version = d.cfg.Version
	if d.cfg.GitVersion {
		sha, err := git.HeadSHA(d.cfg.SrcDir)
		if err != nil {
			return err
		}
		r.version = sha
	}
	return nil
}

// build creates the remote build and then consumes its output stream
// to the end. The stream closing and the build completing are separate
// signals; verifyBuild checks the latter.
func (d *Deployer) build(ctx context.Context, r *run) (err error) {
	r.build, err = d.client.CreateBuild(ctx, d.cfg.App, r.src, r.version)
	if err != nil {
		return
	}
	log.WithFields(log.Fields{
		"build":   r.build.ID,
		"version": r.version,
	}).Info("build created")

	// the platform needs a moment to provision the log stream
	time.Sleep(d.logSettle)
	return d.client.StreamBuildLog(ctx, r.build, d.out)
}

func (d *Deployer) verifyBuild(ctx context.Context, r *run) error {
	// the build record can lag the end of the log stream
	time.Sleep(d.statusSettle)
	build, err := d.client.GetBuild(ctx, d.cfg.App, r.build.ID)
	if err != nil {
		return err
	}
	if build.Status != platform.BuildStatusSucceeded {
		return &BuildError{Build: build}
	}
	return nil
}

func (d *Deployer) clearBundle(ctx context.Context, r *run) error {
	return d.bundle.Clear()
}
