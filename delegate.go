package galleryremote

// Delegate receives the outcome of the client's asynchronous operations.
// Exactly one method fires per issued operation: the success method, or the
// matching failed method with a StatusCode (StatusOperationCancelled when the
// operation was cancelled mid-flight). Methods are invoked from the goroutine
// running the operation, never while the client's internal lock is held, so a
// delegate may call back into the client.
type Delegate interface {
	GalleryDidLogin(g *Client)
	GalleryLoginFailed(g *Client, status StatusCode)

	GalleryDidGetAlbums(g *Client, albums *AlbumTree, dropped []AlbumRecord)
	GalleryGetAlbumsFailed(g *Client, status StatusCode)

	GalleryDidCreateAlbum(g *Client, name string)
	GalleryCreateAlbumFailed(g *Client, status StatusCode)
}
