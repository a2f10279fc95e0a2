package kvstore

// Store keys, each independently versioned by suffix. Bumping a suffix is the
// only supported migration path: data under the old key is orphaned, not
// migrated.
const (
	KeyCart     = "swiftcart_cart_v1"
	KeyWishlist = "swiftcart_wishlist_v1"
	KeyCheckout = "swiftcart_checkout_v1"
	KeyUser     = "swiftcart_user_v1"
	KeyProducts = "swiftcart_products_v17"
	KeyOrders   = "swiftcart_orders_v1"
	KeyUsers    = "swiftcart_users_v_final"
	KeyBanners  = "swiftcart_banners_v4"
)
