// Package changelog implements the emoji changelog preset: commit headers of
// the form ":tag: description" are parsed, labelled by category, grouped and
// rendered through text/template.
//
// A typical pipeline:
//
//	preset, err := changelog.DefaultPreset(ctx)
//	raw, err := changelog.ReadCommits(ctx, changelog.LogOptions{Dir: ".", Range: "v1.0.0..HEAD"})
//	commits := changelog.ParseCommits(preset.Parser, raw)
//	err = changelog.Render(os.Stdout, preset, changelog.Context{Version: "1.1.0"}, commits)
package changelog
