package toolchain

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirect_CompileArgs(t *testing.T) {
	dir := t.TempDir()
	fe := &fakeExec{}
	tc := NewDirect(DirectOptions{Executor: fe})

	obj := filepath.Join(dir, "a.cpp.o")
	got, err := tc.Compile(context.Background(), CompileRequest{
		Unit:      "src/a.cpp",
		Object:    obj,
		BuildDir:  dir,
		ExtraArgs: []string{"-O2", "-std=c++23"},
	})
	require.NoError(t, err)
	assert.Equal(t, Artifacts{Object: obj}, got)

	calls := fe.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "c++", calls[0].name)
	assert.Equal(t, []string{"-Wall", "-c", "-o", obj, "src/a.cpp", "-O2", "-std=c++23"}, calls[0].args)
}

func TestDirect_DriverWithLeadingArgs(t *testing.T) {
	dir := t.TempDir()
	fe := &fakeExec{}
	tc := NewDirect(DirectOptions{Driver: []string{"ccache", "g++"}, Executor: fe})

	_, err := tc.Compile(context.Background(), CompileRequest{Unit: "a.cpp", Object: filepath.Join(dir, "a.o")})
	require.NoError(t, err)

	calls := fe.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "ccache", calls[0].name)
	assert.Equal(t, "g++", calls[0].args[0])
}

func TestDirect_SharedModeUnsupported(t *testing.T) {
	fe := &fakeExec{}
	tc := NewDirect(DirectOptions{Executor: fe})

	assert.False(t, tc.SupportsSharedArtifact())
	_, err := tc.Compile(context.Background(), CompileRequest{Unit: "a.cpp", Object: "a.o", UseShared: true})
	require.Error(t, err)
	assert.True(t, IsUnsupportedMode(err))
	assert.Empty(t, fe.Calls())
}

func TestDirect_CompileFailure(t *testing.T) {
	fe := &fakeExec{fail: func(string, []string) bool { return true }}
	tc := NewDirect(DirectOptions{Executor: fe})

	_, err := tc.Compile(context.Background(), CompileRequest{Unit: "bad.cpp", Object: "bad.o"})
	require.Error(t, err)
	assert.True(t, IsExternalProcess(err))
	assert.Contains(t, err.Error(), "compile failed")
	assert.Contains(t, err.Error(), "bad.cpp")
}

func TestDirect_LinkReplacesOnlyOnSuccess(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "program")
	require.NoError(t, os.WriteFile(exe, []byte("stale"), 0755))

	failing := &fakeExec{fail: func(string, []string) bool { return true }}
	_, err := NewDirect(DirectOptions{Executor: failing}).Link(context.Background(), LinkRequest{
		BuildDir: dir,
		Objects:  []string{"a.o"},
		Output:   exe,
	})
	require.Error(t, err)
	assert.True(t, IsExternalProcess(err))

	data, err := os.ReadFile(exe)
	require.NoError(t, err)
	assert.Equal(t, "stale", string(data))
	assert.NoFileExists(t, exe+".tmp")

	fe := &fakeExec{}
	got, err := NewDirect(DirectOptions{Executor: fe}).Link(context.Background(), LinkRequest{
		BuildDir: dir,
		Objects:  []string{"a.o", "b.o"},
		Output:   exe,
	})
	require.NoError(t, err)
	assert.Equal(t, exe, got)

	data, err = os.ReadFile(exe)
	require.NoError(t, err)
	assert.Equal(t, "c++", string(data))

	calls := fe.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"-o", exe + ".tmp", "a.o", "b.o"}, calls[0].args)
}

func TestDirect_ExeSuffix(t *testing.T) {
	dir := t.TempDir()
	tc := NewDirect(DirectOptions{ExeSuffix: ".exe", Executor: &fakeExec{}})

	got, err := tc.Link(context.Background(), LinkRequest{Output: filepath.Join(dir, "program")})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "program.exe"), got)
	assert.FileExists(t, got)
}

func TestGated_CompileWithoutShared(t *testing.T) {
	dir := t.TempDir()
	fe := &fakeExec{}
	tc := NewGated(GatedOptions{Root: "C:/VC", Executor: fe})

	obj := filepath.Join(dir, "a.cpp.o")
	got, err := tc.Compile(context.Background(), CompileRequest{Unit: "a.cpp", Object: obj, BuildDir: dir})
	require.NoError(t, err)
	assert.Equal(t, Artifacts{Object: obj}, got)
	assert.Zero(t, tc.SharedBuilds())

	calls := fe.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "cl", calls[0].name)
	assert.Equal(t, []string{"/nologo", "/EHsc", "/std:c++latest", "/c", "a.cpp", "/Fo" + obj}, calls[0].args)
}

func TestGated_SharedBuiltOnceAcrossConcurrentUnits(t *testing.T) {
	dir := t.TempDir()
	fe := &fakeExec{delay: 5 * time.Millisecond}
	tc := NewGated(GatedOptions{Root: "C:/VC", Executor: fe})

	const n = 32
	var wg sync.WaitGroup
	shared := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			unit := filepath.Join("src", "u"+string(rune('a'+i%26))+".cpp")
			res, err := tc.Compile(context.Background(), CompileRequest{
				Unit:      unit,
				Object:    filepath.Join(dir, filepath.Base(unit)+".o"),
				BuildDir:  dir,
				UseShared: true,
				ExtraArgs: []string{"/O2"},
			})
			shared[i], errs[i] = res.Shared, err
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, shared[0], shared[i])
	}
	assert.Equal(t, 1, fe.CallsMatching("std.ixx"))
	assert.Equal(t, 1, tc.SharedBuilds())

	fp := Fingerprint("C:/VC", []string{"/O2"})
	assert.Equal(t, filepath.Join(dir, fp, "std.o"), shared[0])
	assert.FileExists(t, shared[0])
	assert.FileExists(t, filepath.Join(dir, fp, "std.ifc"))

	for _, c := range fe.Calls() {
		joined := strings.Join(c.args, " ")
		if strings.Contains(joined, "std.ixx") {
			assert.Contains(t, joined, "/O2")
			continue
		}
		assert.Contains(t, joined, "/reference std="+filepath.Join(dir, fp, "std.ifc"))
	}
}

func TestGated_PreseededSharedArtifactSkipsBuild(t *testing.T) {
	dir := t.TempDir()
	fp := Fingerprint("C:/VC", nil)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, fp), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, fp, "std.o"), []byte("prebuilt"), 0644))

	fe := &fakeExec{}
	tc := NewGated(GatedOptions{Root: "C:/VC", Executor: fe})

	for _, u := range []string{"a.cpp", "b.cpp"} {
		res, err := tc.Compile(context.Background(), CompileRequest{
			Unit:      u,
			Object:    filepath.Join(dir, u+".o"),
			BuildDir:  dir,
			UseShared: true,
		})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, fp, "std.o"), res.Shared)
	}
	assert.Zero(t, fe.CallsMatching("std.ixx"))
	assert.Zero(t, tc.SharedBuilds())
}

func TestGated_DifferentArgsIsolateSharedArtifact(t *testing.T) {
	dir := t.TempDir()
	tc := NewGated(GatedOptions{Root: "C:/VC", Executor: &fakeExec{}})

	a, err := tc.Compile(context.Background(), CompileRequest{
		Unit: "a.cpp", Object: filepath.Join(dir, "a.o"), BuildDir: dir, UseShared: true,
		ExtraArgs: []string{"/O2"},
	})
	require.NoError(t, err)
	b, err := tc.Compile(context.Background(), CompileRequest{
		Unit: "a.cpp", Object: filepath.Join(dir, "a.o"), BuildDir: dir, UseShared: true,
		ExtraArgs: []string{"/Od"},
	})
	require.NoError(t, err)

	assert.NotEqual(t, a.Shared, b.Shared)
	assert.Equal(t, 2, tc.SharedBuilds())
}

func TestGated_SharedFailurePropagates(t *testing.T) {
	dir := t.TempDir()
	fe := &fakeExec{fail: func(_ string, args []string) bool {
		return strings.Contains(strings.Join(args, " "), "std.ixx")
	}}
	tc := NewGated(GatedOptions{Root: "C:/VC", Executor: fe})

	_, err := tc.Compile(context.Background(), CompileRequest{
		Unit: "a.cpp", Object: filepath.Join(dir, "a.o"), BuildDir: dir, UseShared: true,
	})
	require.Error(t, err)
	assert.True(t, IsExternalProcess(err))
	assert.Contains(t, err.Error(), "compile shared failed")
	assert.NoFileExists(t, filepath.Join(dir, "a.o"))
}

func TestGated_Link(t *testing.T) {
	dir := t.TempDir()
	fe := &fakeExec{}
	tc := NewGated(GatedOptions{ExeSuffix: ".exe", Executor: fe})

	out := filepath.Join(dir, "program")
	got, err := tc.Link(context.Background(), LinkRequest{BuildDir: dir, Objects: []string{"a.o", "std.o"}, Output: out})
	require.NoError(t, err)
	assert.Equal(t, out+".exe", got)
	assert.FileExists(t, got)

	calls := fe.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "link", calls[0].name)
	assert.Equal(t, []string{"/nologo", "/OUT:" + out + ".exe.tmp", "a.o", "std.o"}, calls[0].args)
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("/opt/vc", []string{"/O2"})
	assert.Len(t, a, 16)
	assert.Equal(t, a, Fingerprint("/opt/vc", []string{"/O2"}))
	assert.NotEqual(t, a, Fingerprint("/opt/vc2", []string{"/O2"}))
	assert.NotEqual(t, a, Fingerprint("/opt/vc", []string{"/Od"}))
	assert.NotEqual(t, Fingerprint("", []string{"-a", "b"}), Fingerprint("", []string{"-ab"}))
}

func TestSelect(t *testing.T) {
	fe := &fakeExec{}
	tests := []struct {
		goos       string
		kind       string
		wantName   string
		wantShared bool
	}{
		{"linux", "", "unix", false},
		{"darwin", KindAuto, "unix", false},
		{"windows", KindAuto, "msvc", true},
		{"linux", KindMSVC, "msvc", true},
		{"windows", KindUnix, "unix", false},
	}

	for _, tc := range tests {
		got, err := Select(tc.goos, Options{Kind: tc.kind, Executor: fe})
		require.NoError(t, err)
		assert.Equal(t, tc.wantName, got.Name(), "goos=%s kind=%s", tc.goos, tc.kind)
		assert.Equal(t, tc.wantShared, got.SupportsSharedArtifact())
	}

	_, err := Select("linux", Options{Kind: "borland", Executor: fe})
	assert.Error(t, err)

	_, err = Select("linux", Options{})
	assert.Error(t, err)
}

func TestTools(t *testing.T) {
	fe := &fakeExec{}

	d := NewDirect(DirectOptions{Driver: []string{"ccache", "g++"}, Executor: fe})
	assert.Equal(t, []string{"ccache"}, d.Tools())

	g := NewGated(GatedOptions{Root: "/opt/vc", Linker: []string{"lld-link"}, Executor: fe})
	assert.Equal(t, []string{"cl", "lld-link"}, g.Tools())
	assert.Equal(t, filepath.Join("/opt/vc", "modules", "std.ixx"), g.StdModuleSource())
}
