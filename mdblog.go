package main

import "github.com/alecthomas/kong"

var version = "dev"

type CLI struct {
	Version kong.VersionFlag `kong:"short='v',help='Show version information'"`

	Config string `kong:"short='c',type='path',help='Path to the site configuration file (JSON or YAML)'"`
	In     string `kong:"short='i',type='path',help='Directory holding the markdown posts (overrides the configuration)'"`
	Out    string `kong:"short='o',type='path',help='Output directory (overrides the configuration)'"`
	Drafts bool   `kong:"help='Include posts with the draft flag'"`

	Serve bool   `kong:"help='Serve the generated site after rendering'"`
	Watch bool   `kong:"help='Keep running and re-render the site on changes to the input directory'"`
	Addr  string `kong:"default=':8000',help='Address for --serve'"`

	LogLevel  string `kong:"default='info',enum='trace,debug,info,warn,error',help='Log level'"`
	LogFormat string `kong:"default='console',enum='console,json,pretty',help='Log output format'"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("mdblog"),
		kong.Description("Generate a static blog from a directory of markdown posts."),
		kong.Vars{"version": version},
	)

	ctx.FatalIfErrorf(run(&cli))
}

func run(cli *CLI) error {
	loggers, err := newLoggerProvider(cli.LogLevel, cli.LogFormat)
	if err != nil {
		return err
	}

	conf, err := readConf(cli.Config)
	if err != nil {
		return err
	}
	if cli.In != "" {
		conf.WritingDir = cli.In
	}
	if cli.Out != "" {
		conf.OutDir = cli.Out
	}

	te, err := newTemplateEngine(conf)
	if err != nil {
		return err
	}

	build := func() error { return renderSite(conf, te, cli.Drafts, loggers) }
	if err := build(); err != nil {
		return err
	}

	watchLog := loggers.get(watchLogger)
	if cli.Watch && cli.Serve {
		go func() {
			if err := rerenderOnChange(conf.WritingDir, build, watchLog); err != nil {
				watchLog.Error("watcher stopped", "error", err)
			}
		}()
	}

	switch {
	case cli.Serve:
		return serveSite(conf.OutDir, cli.Addr, loggers.get(serveLogger))
	case cli.Watch:
		return rerenderOnChange(conf.WritingDir, build, watchLog)
	}
	return nil
}

func renderSite(conf *SiteConf, te *templateEngine, drafts bool, loggers *loggerProvider) error {
	site, err := ReadSite(conf, drafts, loggers)
	if err != nil {
		return err
	}

	loggers.get(outputLogger).Info("writing site", "dir", conf.OutDir)
	if err := site.RenderAll(te); err != nil {
		return err
	}
	return site.CopyStaticFiles()
}
