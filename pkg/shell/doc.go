// Package shell renders the root document that wraps every page.
//
// The shell produces the html element (always lang="en"), the head tags built
// from the static Metadata record, the global stylesheet link, and a body
// whose class comes from the font loader. Page content is rendered exactly
// once, inside exactly one data-context provider:
//
//	<!doctype html>
//	<html lang="en">
//	  <head>…</head>
//	  <body class="font-inter-1a2b3c4d">
//	    <div data-sage-provider …>CHILDREN</div>
//	  </body>
//	</html>
//
// # Usage
//
// The package-level Layout uses the process default shell:
//
//	app := sage.New(
//	    sage.WithLayout(func(children sage.Component) sage.Component {
//	        return shell.Layout(children)
//	    }),
//	)
//
// Applications that need explicit collaborators build their own shell:
//
//	s := shell.New(
//	    shell.WithProvider(query.NewProvider(query.WithLink(link))),
//	    shell.WithScript("https://unpkg.com/htmx.org@2.0.4"),
//	)
//
// # Initialization
//
// The stylesheet and the webfont are registered once per Shell, on the first
// render or when Init is called at boot. A registration failure is kept and
// returned by every subsequent render, so the hosting framework's error
// handler sees it instead of a half-written document.
//
// # Static Assets
//
// Assets returns the embedded file system holding globals.css. Mount it under
// the same prefix the stylesheet href uses (default "/static/"):
//
//	sage.WithStaticFiles("/static/", shell.Assets(), "assets")
package shell
