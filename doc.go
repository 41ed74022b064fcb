// Package bind derives a server dispatch layer, a typed client, and
// documentation from one declarative API schema. The schema is the single
// source of truth: routes, path captures, query parameters, body types, and
// return types are declared once, and every artifact is a projection of
// that declaration.
//
// Types are registered by name with their serialization capabilities:
//
//	reg := bind.NewRegistry().
//	    MustRegister("UserId", bind.JSONType[UserId]("numeric user identifier")).
//	    MustRegister("Name", bind.JSONType[Name]("display name")).
//	    MustRegister("User", bind.JSONType[User]("a user record"))
//
// Routes reference those names; Build validates every reference eagerly:
//
//	api, err := bind.NewSchema(reg).
//	    Route(http.MethodPost, "/user/create/{id:UserId}", "User",
//	        bind.WithBody("Name"), bind.WithName("user_create")).
//	    Build()
//
// Handlers are plain functions whose signatures mirror the declared shape
// (captures, then query parameters, then the body). Bind checks each
// signature structurally at construction, so a shape mismatch is a startup
// failure, never a runtime surprise:
//
//	table, err := bind.Bind(api,
//	    bind.Handle("user_create", func(ctx context.Context, id UserId, name Name) (User, error) {
//	        return User{ID: id, Name: name}, nil
//	    }))
//
// The same table dispatches transport-neutral request descriptors
// (table.Dispatch), serves HTTP (table.Handler), backs a typed client
// (bind.NewClient over any Transport), and renders docs (bind.Docs,
// bind.WriteText, bind.RenderYAML).
package bind
