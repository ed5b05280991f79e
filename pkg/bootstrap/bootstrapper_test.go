package bootstrap

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/launchpad/internal/testutils"
	"github.com/aretw0/launchpad/pkg/adapters/memory"
	"github.com/aretw0/launchpad/pkg/domain"
	"github.com/aretw0/launchpad/pkg/ports"
	"github.com/aretw0/launchpad/pkg/venv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	isCreate  = memory.ArgsContain("-m", "venv")
	isInstall = memory.ArgsContain("-m", "pip", "install", "-r")
	isProgram = memory.ArgsContain(DefaultEntry)
)

// setupProject creates a project directory, optionally with a manifest.
func setupProject(t *testing.T, manifest bool) string {
	t.Helper()
	p := testutils.DefaultProject()
	if !manifest {
		p.Manifest = ""
	}
	return testutils.SetupProject(t, p)
}

func newBootstrapper(dir string, r ports.CommandRunner, opts ...Option) *Bootstrapper {
	base := []Option{
		WithDir(dir),
		WithGOOS("linux"),
		WithBaseEnv([]string{"PATH=/usr/bin"}),
		WithRunner(r),
	}
	return New(append(base, opts...)...)
}

func TestRun_ScenarioA_CreatesEnvironment(t *testing.T) {
	dir := setupProject(t, true)
	r := memory.NewRunner().On(isCreate, 0, memory.CreateVenv("linux"))

	report, err := newBootstrapper(dir, r).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Created)
	assert.True(t, report.Installed)
	assert.True(t, report.Launched)
	assert.Equal(t, 0, report.ProgramExitCode)

	calls := r.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "python3", calls[0].Name)
	assert.Equal(t, []string{"-m", "venv", "venv"}, calls[0].Args)
	assert.Equal(t, dir, calls[0].Dir)

	python := filepath.Join(dir, "venv", "bin", "python")
	assert.Equal(t, python, calls[1].Name)
	assert.Equal(t, []string{"-m", "pip", "install", "-r", "requirements.txt"}, calls[1].Args)
	assert.Equal(t, python, calls[2].Name)
	assert.Equal(t, []string{"src/main.py"}, calls[2].Args)
}

func TestRun_ScenarioB_ReusesEnvironment(t *testing.T) {
	dir := setupProject(t, true)
	r := memory.NewRunner().On(isCreate, 0, memory.CreateVenv("linux"))
	b := newBootstrapper(dir, r)

	// First run creates the environment, the second must reuse it.
	_, err := b.Run(context.Background())
	require.NoError(t, err)

	second := memory.NewRunner()
	report, err := newBootstrapper(dir, second).Run(context.Background())
	require.NoError(t, err)

	assert.False(t, report.Created)
	assert.False(t, report.Performed(domain.StepCreateEnv))
	assert.True(t, report.Attempted(domain.StepCreateEnv))
	assert.True(t, report.Performed(domain.StepActivateEnv))
	assert.False(t, second.Called(isCreate))
	assert.True(t, second.Called(isInstall))
	assert.True(t, second.Called(isProgram))
}

func TestRun_ScenarioC_ManifestMissing(t *testing.T) {
	dir := setupProject(t, false)
	r := memory.NewRunner().On(isCreate, 0, memory.CreateVenv("linux"))

	report, err := newBootstrapper(dir, r).Run(context.Background())
	require.Error(t, err)

	assert.ErrorIs(t, err, domain.ErrManifestMissing)
	kind, _ := domain.KindOf(err)
	assert.Equal(t, domain.KindManifestMissing, kind)
	assert.False(t, r.Called(isInstall), "install must not be attempted without a manifest")
	assert.False(t, r.Called(isProgram))
	assert.False(t, report.Attempted(domain.StepInstallDeps))
}

func TestRun_ManifestIsDirectory(t *testing.T) {
	dir := setupProject(t, false)
	require.NoError(t, os.Mkdir(filepath.Join(dir, DefaultManifest), 0755))
	r := memory.NewRunner().On(isCreate, 0, memory.CreateVenv("linux"))

	_, err := newBootstrapper(dir, r).Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrManifestMissing)
	assert.False(t, r.Called(isInstall))
}

func TestRun_ScenarioD_CreationFails(t *testing.T) {
	dir := setupProject(t, true)
	r := memory.NewRunner().On(isCreate, 1, nil)

	report, err := newBootstrapper(dir, r).Run(context.Background())
	require.Error(t, err)

	assert.ErrorIs(t, err, domain.ErrEnvironmentCreationFailed)
	var se *domain.StepError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 1, se.ExitCode)
	assert.Equal(t, domain.StepCreateEnv, se.Step)

	assert.False(t, report.Attempted(domain.StepActivateEnv), "activation must not follow a failed creation")
	assert.Len(t, r.Calls(), 1)
}

func TestRun_CreationCannotStart(t *testing.T) {
	dir := setupProject(t, true)
	r := memory.NewRunner(memory.Rule{Match: isCreate, Err: errors.New("executable file not found in $PATH")})

	_, err := newBootstrapper(dir, r).Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrEnvironmentCreationFailed)
	assert.ErrorContains(t, err, "not found")
}

func TestRun_EnvPathIsAFile(t *testing.T) {
	dir := setupProject(t, true)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultEnvDir), nil, 0644))
	r := memory.NewRunner()

	report, err := newBootstrapper(dir, r).Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrEnvironmentCreationFailed)
	assert.Empty(t, r.Calls())
	assert.False(t, report.Attempted(domain.StepCreateEnv))
}

func TestRun_ActivationFails(t *testing.T) {
	dir := setupProject(t, true)
	// A directory without an interpreter, e.g. left behind by an interrupted creation.
	require.NoError(t, os.Mkdir(filepath.Join(dir, DefaultEnvDir), 0755))
	r := memory.NewRunner()

	_, err := newBootstrapper(dir, r).Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrEnvironmentActivationFailed)
	assert.ErrorIs(t, err, venv.ErrInterpreterMissing)
	assert.Empty(t, r.Calls())
}

func TestRun_InstallFails(t *testing.T) {
	dir := setupProject(t, true)
	r := memory.NewRunner().
		On(isCreate, 0, memory.CreateVenv("linux")).
		On(isInstall, 2, nil)

	report, err := newBootstrapper(dir, r).Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrDependencyInstallFailed)
	assert.False(t, report.Installed)
	assert.False(t, r.Called(isProgram))
}

func TestRun_ProgramExitCodeIsNotAnError(t *testing.T) {
	dir := setupProject(t, true)
	r := memory.NewRunner().
		On(isCreate, 0, memory.CreateVenv("linux")).
		On(isProgram, 4, nil)

	report, err := newBootstrapper(dir, r).Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Launched)
	assert.Equal(t, 4, report.ProgramExitCode)
}

func TestRun_ProgramCannotStart(t *testing.T) {
	dir := setupProject(t, true)
	r := memory.NewRunner(
		memory.Rule{Match: isCreate, Effect: memory.CreateVenv("linux")},
		memory.Rule{Match: isProgram, Err: errors.New("permission denied")},
	)

	report, err := newBootstrapper(dir, r).Run(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Launched)
	assert.Equal(t, -1, report.ProgramExitCode)
}

func TestRun_ActivatedEnvironmentReachesSubprocesses(t *testing.T) {
	dir := setupProject(t, true)
	r := memory.NewRunner().On(isCreate, 0, memory.CreateVenv("linux"))
	b := newBootstrapper(dir, r,
		WithExtraEnv(map[string]string{"JIRA_SERVER": "https://issues.apache.org/jira"}),
		WithPipArgs("--quiet"),
		WithProgramArgs("--project", "KAFKA"),
	)

	_, err := b.Run(context.Background())
	require.NoError(t, err)

	calls := r.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, []string{"PATH=/usr/bin"}, calls[0].Env, "creation runs with the host environment")

	root := filepath.Join(dir, "venv")
	for _, c := range calls[1:] {
		assert.Contains(t, c.Env, "VIRTUAL_ENV="+root)
		assert.Contains(t, c.Env, "PATH="+filepath.Join(root, "bin")+":/usr/bin")
		assert.Contains(t, c.Env, "JIRA_SERVER=https://issues.apache.org/jira")
	}
	assert.Equal(t, "--quiet", calls[1].Args[len(calls[1].Args)-1])
	assert.Equal(t, []string{"src/main.py", "--project", "KAFKA"}, calls[2].Args)
}

func TestRun_CustomPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deps.txt"), nil, 0644))
	r := memory.NewRunner().On(isCreate, 0, memory.CreateVenv("linux"))
	b := newBootstrapper(dir, r,
		WithEnvDir(".venv"),
		WithManifest("deps.txt"),
		WithEntry("app.py"),
		WithHostPython("/opt/python3.12/bin/python3"),
	)

	_, err := b.Run(context.Background())
	require.NoError(t, err)

	calls := r.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "/opt/python3.12/bin/python3", calls[0].Name)
	assert.Equal(t, []string{"-m", "venv", ".venv"}, calls[0].Args)
	assert.Equal(t, filepath.Join(dir, ".venv", "bin", "python"), calls[1].Name)
	assert.Contains(t, calls[1].Args, "deps.txt")
	assert.Equal(t, []string{"app.py"}, calls[2].Args)
}

func TestRun_HooksFireInOrder(t *testing.T) {
	dir := setupProject(t, true)
	r := memory.NewRunner().On(isCreate, 0, memory.CreateVenv("linux"))

	var started, finished []domain.Step
	hooks := domain.LifecycleHooks{
		OnStepStart: func(_ context.Context, e *domain.StepEvent) {
			started = append(started, e.Step)
		},
		OnStepFinish: func(_ context.Context, e *domain.StepEvent) {
			finished = append(finished, e.Step)
			assert.Equal(t, "run-1", e.RunID)
		},
	}

	_, err := newBootstrapper(dir, r, WithLifecycleHooks(hooks), WithRunID("run-1")).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.Sequence, started)
	assert.Equal(t, domain.Sequence, finished)
}

func TestRun_CancelledContext(t *testing.T) {
	dir := setupProject(t, true)
	r := memory.NewRunner()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newBootstrapper(dir, r).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Steps)
	assert.Empty(t, r.Calls())
}

func TestPlan(t *testing.T) {
	t.Run("Fresh Project", func(t *testing.T) {
		dir := setupProject(t, true)
		plan := newBootstrapper(dir, memory.NewRunner()).Plan()

		require.Len(t, plan, len(domain.Sequence))
		for i, p := range plan {
			assert.Equal(t, domain.Sequence[i], p.Step)
			assert.NoError(t, p.Blocker)
		}
		assert.False(t, plan[1].Skip)
		assert.Equal(t, []string{"python3", "-m", "venv", "venv"}, plan[1].Command)
		assert.Equal(t, filepath.Join(dir, "venv", "bin", "python"), plan[5].Command[0])
	})

	t.Run("Existing Environment", func(t *testing.T) {
		dir := setupProject(t, true)
		require.NoError(t, memory.CreateVenv("linux")(ports.Command{Args: []string{"-m", "venv", "venv"}, Dir: dir}))

		plan := newBootstrapper(dir, memory.NewRunner()).Plan()
		assert.True(t, plan[1].Skip)
	})

	t.Run("Missing Manifest Blocks", func(t *testing.T) {
		dir := setupProject(t, false)

		plan := newBootstrapper(dir, memory.NewRunner()).Plan()
		require.Len(t, plan, 4)
		assert.Equal(t, domain.StepCheckManifest, plan[3].Step)
		assert.ErrorIs(t, plan[3].Blocker, domain.ErrManifestMissing)
	})
}
