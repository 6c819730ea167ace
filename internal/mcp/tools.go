package mcp

import "github.com/mark3labs/mcp-go/mcp"

func pageParam() mcp.ToolOption {
	return mcp.WithString("page",
		mcp.Required(),
		mcp.Description("Site-relative page path, e.g. files.html or source/internal-config/config.go.html"),
	)
}

var toggleFolderTool = mcp.NewTool("toggle_folder",
	mcp.WithDescription("Expand or collapse a folder row of the directory table. Returns whether the row is now expanded plus the page state."),
	pageParam(),
	mcp.WithString("row",
		mcp.Required(),
		mcp.Description("Row id such as row_0_2_ (the row_ prefix is optional)"),
	),
)

var setExpansionLevelTool = mcp.NewTool("set_expansion_level",
	mcp.WithDescription("Show the directory table down to the given depth: shallower folders expanded, folders at the depth collapsed, deeper rows hidden."),
	pageParam(),
	mcp.WithNumber("level",
		mcp.Required(),
		mcp.Description("Depth to expand to, starting at 1"),
	),
)

var toggleSectionTool = mcp.NewTool("toggle_section",
	mcp.WithDescription("Open or close a collapsible section, showing its content or its one-line summary."),
	pageParam(),
	mcp.WithString("section",
		mcp.Required(),
		mcp.Description("Section id, the id of the section heading"),
	),
)

var toggleInheritedGroupTool = mcp.NewTool("toggle_inherited_group",
	mcp.WithDescription("Show or hide the members a type inherits from an embedded type."),
	pageParam(),
	mcp.WithString("group",
		mcp.Required(),
		mcp.Description("Inherited group id, e.g. inh_Server_Base"),
	),
)

var foldRegionTool = mcp.NewTool("fold_region",
	mcp.WithDescription("Fold or unfold one brace-delimited block of a source listing."),
	pageParam(),
	mcp.WithString("region",
		mcp.Required(),
		mcp.Description("Region id: the zero-padded line number the block starts on, e.g. 00012"),
	),
)

var foldAllTool = mcp.NewTool("fold_all",
	mcp.WithDescription("Fold every block of a source listing, or unfold them all if they are already folded."),
	pageParam(),
)

var getViewStateTool = mcp.NewTool("get_view_state",
	mcp.WithDescription("Return the current visibility state of a page: rows, sections, inherited groups and fold regions."),
	pageParam(),
)
