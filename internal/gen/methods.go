package gen

// Method is one remote API method that gets a typed wrapper.
type Method struct {
	// Name is the dotted remote identifier, e.g. "users.get".
	Name string
	// Doc is appended to the wrapper's doc comment.
	Doc string
}

// Methods is the wrapper table, grouped by namespace.
var Methods = []Method{
	{Name: "account.getAppPermissions", Doc: "Returns the permission bit mask granted to the application."},
	{Name: "account.getProfileInfo", Doc: "Returns the current user's profile."},

	{Name: "database.getCities", Doc: "Returns cities of a country."},
	{Name: "database.getCountries", Doc: "Returns the list of countries."},

	{Name: "friends.get", Doc: "Returns a user's friend ids or profiles."},
	{Name: "friends.getMutual", Doc: "Returns friends shared with another user."},
	{Name: "friends.getOnline", Doc: "Returns friends that are online."},

	{Name: "groups.get", Doc: "Returns the communities a user belongs to."},
	{Name: "groups.getById", Doc: "Returns communities by id or screen name."},
	{Name: "groups.getMembers", Doc: "Returns the members of a community."},

	{Name: "likes.add", Doc: "Likes an object."},
	{Name: "likes.getList", Doc: "Returns the users who liked an object."},

	{Name: "messages.getHistory", Doc: "Returns messages of a conversation."},
	{Name: "messages.send", Doc: "Sends a message."},

	{Name: "newsfeed.get", Doc: "Returns the current user's news feed."},

	{Name: "photos.get", Doc: "Returns photos of an album."},
	{Name: "photos.getAlbums", Doc: "Returns a user's or community's photo albums."},
	{Name: "photos.getWallUploadServer", Doc: "Returns the upload address for wall photos."},

	{Name: "status.get", Doc: "Returns a user's status text."},
	{Name: "status.set", Doc: "Sets the current user's status text."},

	{Name: "users.get", Doc: "Returns user profiles."},
	{Name: "users.getFollowers", Doc: "Returns a user's followers."},
	{Name: "users.search", Doc: "Searches users."},

	{Name: "utils.resolveScreenName", Doc: "Resolves a screen name to an object type and id."},

	{Name: "wall.get", Doc: "Returns posts from a wall."},
	{Name: "wall.getById", Doc: "Returns wall posts by id."},
	{Name: "wall.getComments", Doc: "Returns comments on a wall post."},
	{Name: "wall.post", Doc: "Publishes a wall post."},
}
